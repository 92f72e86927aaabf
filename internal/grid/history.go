// Package grid stores the generations of a cellular automaton and navigates
// between them.
//
// A History owns a timeline of equally sized boards and a cursor selecting
// the live generation. Reads outside the board return 0, as if the grid were
// surrounded by an endless field of the ground state. Mutating the timeline
// from any position other than its tail discards the generations after the
// cursor first, so exactly one future is retained at a time.
package grid

import "fmt"

// Reader is the read-only view handed to renderers and other collaborators.
type Reader interface {
	Get(row, col int) Cell
	Dimensions() (rows, cols int)
	States() int
	Cursor() int
	Len() int
	Snapshot() Board
	Generation(i int) (Board, bool)
}

// History is the authoritative store of all generations of one automaton.
type History struct {
	rows, cols int
	states     int
	timeline   []Board
	cursor     int
}

var _ Reader = (*History)(nil)

// New creates a history holding a single all-zero generation.
func New(rows, cols, states int) (*History, error) {
	if err := checkShape(rows, cols); err != nil {
		return nil, err
	}
	if states <= 0 || states > MaxStates {
		return nil, fmt.Errorf("%w: %d states", ErrInvalidShape, states)
	}
	return &History{
		rows:     rows,
		cols:     cols,
		states:   states,
		timeline: []Board{NewBoard(rows, cols)},
	}, nil
}

// Dimensions returns the board size shared by every generation.
func (h *History) Dimensions() (rows, cols int) { return h.rows, h.cols }

// States returns the number of cell states.
func (h *History) States() int { return h.states }

// Cursor returns the index of the live generation.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of stored generations.
func (h *History) Len() int { return len(h.timeline) }

// Get reads a cell of the live generation. Coordinates outside the grid read
// as 0.
func (h *History) Get(row, col int) Cell {
	return h.timeline[h.cursor].At(row, col)
}

// Snapshot returns a copy of the live generation.
func (h *History) Snapshot() Board {
	return h.timeline[h.cursor].Clone()
}

// Generation returns a copy of the stored generation i.
func (h *History) Generation(i int) (Board, bool) {
	if i < 0 || i >= len(h.timeline) {
		return Board{}, false
	}
	return h.timeline[i].Clone(), true
}

// Set writes value at (row, col).
//
// At the tail of the timeline the live generation is edited in place. Behind
// the tail, editing in place would rewrite a generation that later ones were
// computed from, so the later generations are dropped and the edit is
// committed as a new generation forked from the live one instead. With the
// cursor at k the timeline ends up k+2 long with the cursor at k+1, and
// generation k keeps its old contents.
func (h *History) Set(row, col int, value Cell) error {
	if row < 0 || row >= h.rows || col < 0 || col >= h.cols {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, row, col, h.rows, h.cols)
	}
	if int(value) >= h.states {
		return fmt.Errorf("%w: %d with %d states", ErrOutOfRange, value, h.states)
	}
	if h.atTail() {
		h.timeline[h.cursor].Put(row, col, value)
		return nil
	}
	next := h.timeline[h.cursor].Clone()
	next.Put(row, col, value)
	h.commit(next)
	return nil
}

// Advance appends next directly after the cursor, discarding anything beyond
// the cursor, and moves the cursor onto it. The board is copied.
func (h *History) Advance(next Board) error {
	if next.Rows != h.rows || next.Cols != h.cols || len(next.data) != h.rows*h.cols {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrShapeMismatch, next.Rows, next.Cols, h.rows, h.cols)
	}
	if int(next.maxValue()) >= h.states {
		return fmt.Errorf("%w: %d with %d states", ErrOutOfRange, next.maxValue(), h.states)
	}
	h.commit(next.Clone())
	return nil
}

// StepBack moves the cursor back by n generations, stopping at generation 0.
// It returns the new cursor.
func (h *History) StepBack(n int) int {
	if n <= 0 {
		return h.cursor
	}
	h.cursor -= n
	if h.cursor < 0 {
		h.cursor = 0
	}
	return h.cursor
}

// StepForward moves the cursor forward through already stored generations,
// stopping at the tail. Nothing is computed. It returns the new cursor.
func (h *History) StepForward(n int) int {
	if n <= 0 {
		return h.cursor
	}
	h.cursor += n
	if tail := len(h.timeline) - 1; h.cursor > tail {
		h.cursor = tail
	}
	return h.cursor
}

// Reset drops every generation after generation 0 and moves the cursor there.
// Generation 0 keeps whatever seed it holds.
func (h *History) Reset() {
	h.truncate(0)
	h.cursor = 0
}

// Seed resets the timeline and replaces the contents of generation 0 with a
// copy of b.
func (h *History) Seed(b Board) error {
	if b.Rows != h.rows || b.Cols != h.cols || len(b.data) != h.rows*h.cols {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrShapeMismatch, b.Rows, b.Cols, h.rows, h.cols)
	}
	if int(b.maxValue()) >= h.states {
		return fmt.Errorf("%w: %d with %d states", ErrOutOfRange, b.maxValue(), h.states)
	}
	h.Reset()
	h.timeline[0] = b.Clone()
	return nil
}

// Resize rebuilds the history at b's dimensions with b as generation 0. It is
// the only way the grid shape ever changes.
func (h *History) Resize(b Board) error {
	if err := checkShape(b.Rows, b.Cols); err != nil {
		return err
	}
	if len(b.data) != b.Rows*b.Cols {
		return fmt.Errorf("%w: %dx%d board holds %d cells", ErrInvalidShape, b.Rows, b.Cols, len(b.data))
	}
	if int(b.maxValue()) >= h.states {
		return fmt.Errorf("%w: %d with %d states", ErrOutOfRange, b.maxValue(), h.states)
	}
	h.rows, h.cols = b.Rows, b.Cols
	h.timeline = []Board{b.Clone()}
	h.cursor = 0
	return nil
}

// checkShape rejects non-positive dimensions and boards above MaxCells.
func checkShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidShape, rows, cols, MaxCells)
	}
	return nil
}

func (h *History) atTail() bool { return h.cursor == len(h.timeline)-1 }

func (h *History) commit(b Board) {
	h.truncate(h.cursor)
	h.timeline = append(h.timeline, b)
	h.cursor = len(h.timeline) - 1
}

// truncate keeps generations 0..last.
func (h *History) truncate(last int) {
	for i := last + 1; i < len(h.timeline); i++ {
		h.timeline[i] = Board{}
	}
	h.timeline = h.timeline[:last+1]
}
