package grid

// Cell is the state of a single lattice site.
type Cell = uint8

// MaxStates is the largest state count a Cell can represent.
const MaxStates = 256

// MaxCells bounds rows*cols for a single board.
const MaxCells = 1 << 28

// Board stores one generation of cells in row-major order.
type Board struct {
	Rows, Cols int
	data       []Cell
}

// NewBoard allocates an all-zero board with the given dimensions.
func NewBoard(rows, cols int) Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Board{Rows: rows, Cols: cols, data: make([]Cell, rows*cols)}
}

// BoardFromRows builds a board from a rectangular slice of rows. Ragged input
// reports ok=false.
func BoardFromRows(rows [][]Cell) (Board, bool) {
	if len(rows) == 0 {
		return NewBoard(0, 0), true
	}
	cols := len(rows[0])
	b := NewBoard(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return Board{}, false
		}
		copy(b.data[r*cols:], row)
	}
	return b, true
}

// Cells exposes the backing slice so callers can read/write values directly.
func (b Board) Cells() []Cell { return b.data }

// Index returns the linear slice index for (row, col).
func (b Board) Index(row, col int) int { return row*b.Cols + col }

// In reports whether (row, col) lies inside the board.
func (b Board) In(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// At returns the cell at (row, col), or 0 outside the board.
func (b Board) At(row, col int) Cell {
	if !b.In(row, col) {
		return 0
	}
	return b.data[b.Index(row, col)]
}

// Put writes v at (row, col). The caller guarantees the coordinate is inside.
func (b Board) Put(row, col int, v Cell) { b.data[b.Index(row, col)] = v }

// Clone returns a deep copy.
func (b Board) Clone() Board {
	out := Board{Rows: b.Rows, Cols: b.Cols, data: make([]Cell, len(b.data))}
	copy(out.data, b.data)
	return out
}

// Rows2D copies the board into a slice of rows.
func (b Board) Rows2D() [][]Cell {
	out := make([][]Cell, b.Rows)
	for r := range out {
		out[r] = append([]Cell(nil), b.data[r*b.Cols:(r+1)*b.Cols]...)
	}
	return out
}

// Clear fills the board with zeros.
func (b Board) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Equal reports whether both boards have the same shape and contents.
func (b Board) Equal(o Board) bool {
	if b.Rows != o.Rows || b.Cols != o.Cols || len(b.data) != len(o.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (b Board) maxValue() Cell {
	var m Cell
	for _, v := range b.data {
		if v > m {
			m = v
		}
	}
	return m
}
