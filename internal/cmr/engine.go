// Package cmr implements cellular automata driven by conditionally matching
// rules.
//
// A rule holds one (reference state, comparator) pair per neighborhood slot
// followed by an output state:
//
//	N   W   C   E   S   out
//	0 2 1 2 1 2 2 2 2 1 3      "02121222213"
//
// Comparator codes are 0 (>=), 1 (<=), 2 (==) and 3 (!=). Two-dimensional
// grids use the von Neumann neighborhood North, West, Center, East, South;
// grids with a single row or column use Left, Center, Right. Rules are tried
// in order and the first one whose every condition holds decides the cell's
// next state. A cell no rule matches keeps its state.
package cmr

import (
	"fmt"

	"cmr-ca/internal/core"
	"cmr-ca/internal/grid"
)

// Warning records a rule that was dropped instead of failing the caller.
type Warning struct {
	// Index is the rule's position in the input list.
	Index int
	Rule  string
	Err   error
}

func (w Warning) String() string {
	return fmt.Sprintf("rule %d skipped: %v", w.Index, w.Err)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithName sets the name reported by Name.
func WithName(name string) Option {
	return func(e *Engine) { e.name = name }
}

// Engine owns a rule set and the history it advances.
type Engine struct {
	name     string
	grid     *grid.History
	hood     Neighborhood
	rules    []Rule
	warnings []Warning
}

var _ core.Automaton = (*Engine)(nil)

// New creates an engine over h. Rules that fail to parse are skipped and
// reported by Warnings; an engine without rules never changes a cell.
func New(h *grid.History, rules []string, opts ...Option) *Engine {
	rows, cols := h.Dimensions()
	e := &Engine{name: "cmr", grid: h, hood: NeighborhoodFor(rows, cols)}
	for _, opt := range opts {
		opt(e)
	}
	e.rules, e.warnings = e.parseAll(rules)
	return e
}

func (e *Engine) parseAll(rules []string) ([]Rule, []Warning) {
	parsed := make([]Rule, 0, len(rules))
	var warnings []Warning
	for i, s := range rules {
		r, err := ParseRule(s, e.hood.Size(), e.grid.States())
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Rule: s, Err: err})
			continue
		}
		parsed = append(parsed, r)
	}
	return parsed, warnings
}

// Name returns the automaton's display name.
func (e *Engine) Name() string { return e.name }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size {
	rows, cols := e.grid.Dimensions()
	return core.Size{W: cols, H: rows}
}

// States returns the number of cell states.
func (e *Engine) States() int { return e.grid.States() }

// Neighborhood returns the neighborhood rules are matched against.
func (e *Engine) Neighborhood() Neighborhood { return e.hood }

// Grid exposes a read-only view of the history.
func (e *Engine) Grid() grid.Reader { return e.grid }

// Warnings returns the rules dropped by the last batch load.
func (e *Engine) Warnings() []Warning { return append([]Warning(nil), e.warnings...) }

// Rules returns a copy of the rule set.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Clone()
	}
	return out
}

// RuleCount returns the number of rules.
func (e *Engine) RuleCount() int { return len(e.rules) }

// AddRule parses s and appends it. On error the rule set is unchanged.
func (e *Engine) AddRule(s string) error {
	r, err := ParseRule(s, e.hood.Size(), e.grid.States())
	if err != nil {
		return err
	}
	e.rules = append(e.rules, r)
	return nil
}

// RemoveRule deletes the rule at index i.
func (e *Engine) RemoveRule(i int) error {
	if i < 0 || i >= len(e.rules) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(e.rules))
	}
	e.rules = append(e.rules[:i], e.rules[i+1:]...)
	return nil
}

// SetRules replaces the whole rule set. Unparseable rules are skipped and
// returned.
func (e *Engine) SetRules(rules []string) []Warning {
	e.rules, e.warnings = e.parseAll(rules)
	return e.Warnings()
}

// ClearRules removes every rule.
func (e *Engine) ClearRules() { e.rules = nil }

// Get reads a cell of the live generation; outside the grid it reads 0.
func (e *Engine) Get(row, col int) grid.Cell { return e.grid.Get(row, col) }

// Set edits a cell of the live generation, forking history when the cursor
// is behind the tail.
func (e *Engine) Set(row, col int, v grid.Cell) error { return e.grid.Set(row, col, v) }

// Cells returns a row-major copy of the live generation.
func (e *Engine) Cells() []grid.Cell { return e.grid.Snapshot().Cells() }

// Generation returns the cursor position.
func (e *Engine) Generation() int { return e.grid.Cursor() }

// Generations returns the timeline length.
func (e *Engine) Generations() int { return e.grid.Len() }

// Reset rewinds to generation 0 and forgets the rest of the timeline.
func (e *Engine) Reset() { e.grid.Reset() }

// Back moves n generations into the past without recomputing anything.
func (e *Engine) Back(n int) int { return e.grid.StepBack(n) }

// Step computes the successor of the live generation and commits it after
// the cursor. Either the whole board is committed or nothing changes.
func (e *Engine) Step() error {
	next := e.next()
	if err := e.grid.Advance(next); err != nil {
		return fmt.Errorf("advance generation %d: %w", e.grid.Cursor(), err)
	}
	return nil
}

// Forward moves n generations ahead, replaying stored generations while they
// exist and computing new ones past the tail. It returns the new cursor.
func (e *Engine) Forward(n int) (int, error) {
	for i := 0; i < n; i++ {
		if e.grid.Cursor() < e.grid.Len()-1 {
			e.grid.StepForward(1)
			continue
		}
		if err := e.Step(); err != nil {
			return e.grid.Cursor(), err
		}
	}
	return e.grid.Cursor(), nil
}

func (e *Engine) next() grid.Board {
	rows, cols := e.grid.Dimensions()
	next := grid.NewBoard(rows, cols)
	hood := make([]grid.Cell, 0, e.hood.Size())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			hood = e.hood.Gather(e.grid, r, c, hood[:0])
			next.Put(r, c, e.apply(hood))
		}
	}
	return next
}

// apply returns the output of the first matching rule, or the center value.
func (e *Engine) apply(hood []grid.Cell) grid.Cell {
	for _, r := range e.rules {
		if r.Matches(hood) {
			return r.Output
		}
	}
	return hood[e.hood.center]
}

// LoadTemplate seeds generation 0 with board, centred in the grid, and drops
// the rest of the timeline.
//
// The template must be rectangular and hold only values below the state
// count. A template larger than the grid fails with ErrTemplateTooLarge
// unless resize is set, in which case the grid is rebuilt at the template's
// size; rules that no longer fit the new neighborhood are dropped and
// reported by Warnings. Nothing changes when an error is returned.
func (e *Engine) LoadTemplate(board [][]int, resize bool) error {
	tmpl, err := e.templateBoard(board)
	if err != nil {
		return err
	}

	rows, cols := e.grid.Dimensions()
	if tmpl.Rows <= rows && tmpl.Cols <= cols {
		seed := grid.NewBoard(rows, cols)
		offR, offC := (rows-tmpl.Rows)/2, (cols-tmpl.Cols)/2
		for r := 0; r < tmpl.Rows; r++ {
			for c := 0; c < tmpl.Cols; c++ {
				seed.Put(offR+r, offC+c, tmpl.At(r, c))
			}
		}
		return e.grid.Seed(seed)
	}
	if !resize {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrTemplateTooLarge, tmpl.Rows, tmpl.Cols, rows, cols)
	}

	hood := NeighborhoodFor(tmpl.Rows, tmpl.Cols)
	kept := e.rules
	var dropped []Warning
	if hood.Size() != e.hood.Size() {
		kept = nil
		for i, r := range e.rules {
			dropped = append(dropped, Warning{
				Index: i,
				Rule:  r.String(),
				Err:   ruleErr(r.String(), -1, ErrBadLength, "%s neighborhood after resize needs %d fields", hood.Name(), hood.RuleLength()),
			})
		}
	}

	if err := e.grid.Resize(tmpl); err != nil {
		return err
	}
	e.hood = hood
	e.rules = kept
	e.warnings = append(e.warnings, dropped...)
	return nil
}

func (e *Engine) templateBoard(board [][]int) (grid.Board, error) {
	if len(board) == 0 || len(board[0]) == 0 {
		return grid.Board{}, fmt.Errorf("%w: empty template", grid.ErrShapeMismatch)
	}
	states := e.grid.States()
	cols := len(board[0])
	b := grid.NewBoard(len(board), cols)
	for r, row := range board {
		if len(row) != cols {
			return grid.Board{}, fmt.Errorf("%w: template row %d has %d cells, want %d", grid.ErrShapeMismatch, r, len(row), cols)
		}
		for c, v := range row {
			if v < 0 || v >= states {
				return grid.Board{}, fmt.Errorf("%w: template cell (%d,%d)=%d with %d states", grid.ErrOutOfRange, r, c, v, states)
			}
			b.Put(r, c, grid.Cell(v))
		}
	}
	return b, nil
}
