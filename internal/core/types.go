package core

import (
	"fmt"
	"sort"
	"strings"
)

// Size describes the dimensions of an automaton grid. W counts columns and H
// counts rows.
type Size struct {
	W int
	H int
}

// Automaton is the contract viewers and tools drive.
type Automaton interface {
	Name() string
	Size() Size
	States() int
	Get(row, col int) uint8
	Set(row, col int, v uint8) error
	Step() error
	Forward(n int) (int, error)
	Back(n int) int
	Reset()
	Generation() int
	Generations() int
	Cells() []uint8
}

// Factory constructs an Automaton using an optional configuration map.
type Factory func(cfg map[string]string) (Automaton, error)

var automata = map[string]Factory{}

// Register adds an automaton factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	automata[name] = f
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(automata))
	for name := range automata {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the automaton registered under name.
func Open(name string, cfg map[string]string) (Automaton, error) {
	f, ok := automata[name]
	if !ok {
		return nil, fmt.Errorf("unknown automaton %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return f(cfg)
}
