package cmr

import "cmr-ca/internal/grid"

// Neighborhood is a fixed, ordered list of offsets around a cell. The order
// is part of the rule encoding: rule field 2k constrains slot k.
type Neighborhood struct {
	name    string
	offsets [][2]int
	center  int
}

var (
	// VonNeumann orders the 2-D neighborhood North, West, Center, East, South.
	VonNeumann = Neighborhood{
		name:    "von-neumann",
		offsets: [][2]int{{-1, 0}, {0, -1}, {0, 0}, {0, 1}, {1, 0}},
		center:  2,
	}

	// RowLine is the 1-D neighborhood Left, Center, Right of a single-row grid.
	RowLine = Neighborhood{
		name:    "row",
		offsets: [][2]int{{0, -1}, {0, 0}, {0, 1}},
		center:  1,
	}

	// ColumnLine is the 1-D neighborhood of a single-column grid, reading the
	// column top to bottom as Left, Center, Right.
	ColumnLine = Neighborhood{
		name:    "column",
		offsets: [][2]int{{-1, 0}, {0, 0}, {1, 0}},
		center:  1,
	}
)

// NeighborhoodFor picks the neighborhood for a grid shape. Grids with a single
// row or column are one-dimensional.
func NeighborhoodFor(rows, cols int) Neighborhood {
	switch {
	case rows == 1:
		return RowLine
	case cols == 1:
		return ColumnLine
	default:
		return VonNeumann
	}
}

// Name identifies the neighborhood.
func (n Neighborhood) Name() string { return n.name }

// Size returns the number of slots.
func (n Neighborhood) Size() int { return len(n.offsets) }

// OneDimensional reports whether the neighborhood belongs to a 1-D grid.
func (n Neighborhood) OneDimensional() bool { return len(n.offsets) == 3 }

// RuleLength returns the field count of a rule for this neighborhood.
func (n Neighborhood) RuleLength() int { return 2*len(n.offsets) + 1 }

// cellReader is satisfied by grid.History; reads outside the grid yield 0.
type cellReader interface {
	Get(row, col int) grid.Cell
}

// Gather appends the neighborhood of (row, col) to dst in slot order.
func (n Neighborhood) Gather(src cellReader, row, col int, dst []grid.Cell) []grid.Cell {
	for _, off := range n.offsets {
		dst = append(dst, src.Get(row+off[0], col+off[1]))
	}
	return dst
}
