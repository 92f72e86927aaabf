package app

import (
	"fmt"

	"cmr-ca/internal/core"
)

// Title is the window title for a.
func Title(a core.Automaton) string {
	return fmt.Sprintf("cmr-ca: %s (%d states)", a.Name(), a.States())
}
