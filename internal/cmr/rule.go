package cmr

import (
	"strconv"
	"strings"

	"cmr-ca/internal/grid"
)

// Comparator is the test applied between a neighbor's state and a rule's
// reference state.
type Comparator uint8

const (
	// GreaterEqual passes when the neighbor state is >= the reference.
	GreaterEqual Comparator = iota
	// LessEqual passes when the neighbor state is <= the reference.
	LessEqual
	// Equal passes when the neighbor state equals the reference.
	Equal
	// NotEqual passes when the neighbor state differs from the reference.
	NotEqual
)

// String returns the comparator symbol.
func (c Comparator) String() string {
	switch c {
	case GreaterEqual:
		return ">="
	case LessEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	default:
		return "?"
	}
}

// Valid reports whether c is one of the four comparator codes.
func (c Comparator) Valid() bool { return c <= NotEqual }

// Test applies the comparator to neighbor value v and reference ref.
func (c Comparator) Test(v, ref grid.Cell) bool {
	switch c {
	case GreaterEqual:
		return v >= ref
	case LessEqual:
		return v <= ref
	case Equal:
		return v == ref
	case NotEqual:
		return v != ref
	default:
		return false
	}
}

// Condition is one (reference state, comparator) pair of a rule.
type Condition struct {
	State grid.Cell
	Cmp   Comparator
}

// Rule is a conditionally matching rule: one condition per neighborhood slot
// and the state written when all of them hold.
type Rule struct {
	Conditions []Condition
	Output     grid.Cell
}

// Size returns the number of neighborhood slots the rule constrains.
func (r Rule) Size() int { return len(r.Conditions) }

// Matches reports whether every condition holds for the neighborhood values.
func (r Rule) Matches(hood []grid.Cell) bool {
	if len(hood) != len(r.Conditions) {
		return false
	}
	for i, cond := range r.Conditions {
		if !cond.Cmp.Test(hood[i], cond.State) {
			return false
		}
	}
	return true
}

// String encodes the rule in its compact digit form, or in the |-delimited
// form when some state needs more than one digit.
func (r Rule) String() string {
	fields := make([]string, 0, 2*len(r.Conditions)+1)
	wide := r.Output > 9
	for _, cond := range r.Conditions {
		fields = append(fields, strconv.Itoa(int(cond.State)), strconv.Itoa(int(cond.Cmp)))
		if cond.State > 9 {
			wide = true
		}
	}
	fields = append(fields, strconv.Itoa(int(r.Output)))
	if wide {
		return strings.Join(fields, "|")
	}
	return strings.Join(fields, "")
}

// Clone returns a deep copy.
func (r Rule) Clone() Rule {
	return Rule{Conditions: append([]Condition(nil), r.Conditions...), Output: r.Output}
}

// ParseRule decodes a rule for a neighborhood of size slots and an automaton
// with the given number of states.
//
// Two encodings are accepted: the compact form, one digit per field with no
// delimiter ("02121222213"), and the |-delimited form ("0|2|1|2|1|2|2|2|2|1|3")
// whose fields may hold multi-digit states. Fields alternate reference state
// and comparator code; the trailing field is the output state.
func ParseRule(s string, size, states int) (Rule, error) {
	text := strings.TrimSpace(s)
	var fields []string
	if strings.Contains(text, "|") {
		fields = strings.Split(text, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
	} else {
		fields = make([]string, 0, len(text))
		for _, ch := range text {
			fields = append(fields, string(ch))
		}
	}

	want := 2*size + 1
	if len(fields) != want {
		return Rule{}, ruleErr(s, -1, ErrBadLength, "%d fields, want %d", len(fields), want)
	}

	rule := Rule{Conditions: make([]Condition, size)}
	for k := 0; k < size; k++ {
		state, err := parseState(s, 2*k, fields[2*k], states)
		if err != nil {
			return Rule{}, err
		}
		code, ok := digits(fields[2*k+1])
		if !ok || code > int(NotEqual) {
			return Rule{}, ruleErr(s, 2*k+1, ErrBadComparator, "%q is not one of 0..3", fields[2*k+1])
		}
		rule.Conditions[k] = Condition{State: state, Cmp: Comparator(code)}
	}
	out, err := parseState(s, want-1, fields[want-1], states)
	if err != nil {
		return Rule{}, err
	}
	rule.Output = out
	return rule, nil
}

func parseState(rule string, slot int, field string, states int) (grid.Cell, error) {
	v, ok := digits(field)
	if !ok {
		return 0, ruleErr(rule, slot, ErrBadState, "%q is not a state", field)
	}
	if v >= states {
		return 0, ruleErr(rule, slot, ErrBadState, "state %d with %d states", v, states)
	}
	return grid.Cell(v), nil
}

// digits parses a field made only of ASCII digits. Signs and spaces are
// rejected.
func digits(field string) (int, bool) {
	if field == "" {
		return 0, false
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(field)
	return v, err == nil
}
