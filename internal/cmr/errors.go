package cmr

import (
	"errors"
	"fmt"
)

// Rule errors
var (
	// ErrRule is the parent of every rule validation failure.
	ErrRule = errors.New("invalid rule")

	// ErrBadLength indicates a rule whose slot count does not fit the neighborhood.
	ErrBadLength = errors.New("bad rule length")

	// ErrBadComparator indicates a comparator code outside 0..3.
	ErrBadComparator = errors.New("bad comparator")

	// ErrBadState indicates a reference or output state outside [0, states).
	ErrBadState = errors.New("bad state")
)

// Rule set and template errors
var (
	// ErrIndexOutOfRange indicates a rule index that does not exist.
	ErrIndexOutOfRange = errors.New("rule index out of range")

	// ErrTemplateTooLarge indicates a template that does not fit the grid and
	// resizing was not requested.
	ErrTemplateTooLarge = errors.New("template larger than grid")
)

// RuleError describes why a rule string was rejected. It matches both ErrRule
// and its specific cause with errors.Is.
type RuleError struct {
	Rule string
	// Slot is the offending field index within the rule, or -1 when the rule
	// as a whole is malformed.
	Slot int
	Err  error
	msg  string
}

func (e *RuleError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("rule %q: %v: %s", e.Rule, e.Err, e.msg)
	}
	return fmt.Sprintf("rule %q: %v at field %d: %s", e.Rule, e.Err, e.Slot, e.msg)
}

// Unwrap exposes the specific cause and ErrRule.
func (e *RuleError) Unwrap() []error { return []error{e.Err, ErrRule} }

func ruleErr(rule string, slot int, cause error, format string, args ...any) *RuleError {
	return &RuleError{Rule: rule, Slot: slot, Err: cause, msg: fmt.Sprintf(format, args...)}
}
