package template

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTemplate indicates a template whose size or state count is unusable.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrUnknownFormat indicates a template file extension no decoder handles.
	ErrUnknownFormat = errors.New("unknown template format")
)

// Warning reports a template entry that was replaced by its default.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}
