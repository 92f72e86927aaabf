package ui

import (
	"fmt"

	"cmr-ca/internal/cmr"
	"cmr-ca/internal/core"
)

// MinPanelHeight keeps the HUD readable next to very short grids.
const MinPanelHeight = 320

// Controls is the viewer state the HUD displays and adjusts.
type Controls interface {
	Paused() bool
	Brush() uint8
	Rate() int
	SetRate(gps int)
	Status() string
}

type ruleLister interface {
	Rules() []cmr.Rule
}

// statusLines summarizes a and the viewer state for the side panel.
func statusLines(a core.Automaton, ctl Controls) []string {
	state := "playing"
	if ctl.Paused() {
		state = "paused"
	}
	size := a.Size()
	return []string{
		fmt.Sprintf("gen %d of %d", a.Generation(), a.Generations()-1),
		fmt.Sprintf("%dx%d, %d states", size.H, size.W, a.States()),
		fmt.Sprintf("%s at %d/s", state, ctl.Rate()),
		fmt.Sprintf("brush %d", ctl.Brush()),
	}
}

// ruleLines lists the rules of a, at most limit of them, or nil when a does
// not expose rules.
func ruleLines(a core.Automaton, limit int) []string {
	rl, ok := a.(ruleLister)
	if !ok {
		return nil
	}
	rules := rl.Rules()
	if len(rules) == 0 {
		return []string{"no rules"}
	}
	lines := make([]string, 0, min(len(rules), limit)+1)
	for i, r := range rules {
		if i == limit {
			lines = append(lines, fmt.Sprintf("... %d more", len(rules)-limit))
			break
		}
		lines = append(lines, fmt.Sprintf("%2d %s", i, r.String()))
	}
	return lines
}

// cellAt maps a screen position to the cell under it.
func cellAt(x, y, scale int, size core.Size) (row, col int, ok bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/scale, x/scale
	if row >= size.H || col >= size.W {
		return 0, 0, false
	}
	return row, col, true
}
