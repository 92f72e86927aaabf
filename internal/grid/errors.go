package grid

import "errors"

// Access errors
var (
	// ErrOutOfBounds indicates a direct access outside the grid extent.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrOutOfRange indicates a cell value that is not below the state count.
	ErrOutOfRange = errors.New("cell value out of range")
)

// Shape errors
var (
	// ErrShapeMismatch indicates a board whose dimensions differ from the grid.
	ErrShapeMismatch = errors.New("board shape mismatch")

	// ErrInvalidShape indicates non-positive or oversized dimensions, or a bad
	// state count.
	ErrInvalidShape = errors.New("invalid grid shape")
)
