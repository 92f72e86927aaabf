// Package template loads automaton templates and turns them into engines.
//
// A template names the grid size, the state count, the CMR rules and an
// optional origin pattern:
//
//	name: glider
//	rows: 32
//	cols: 32
//	states: 2
//	rules: ["00001200000"]
//	origin: [[1, 1], [1, 0]]
//
// JSON and YAML files are accepted. Rules and origin are best effort: a
// missing or malformed entry falls back to its default and is reported as a
// Warning. Size and state count are required.
package template

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format selects a template decoder.
type Format string

const (
	// FormatJSON decodes templates with encoding/json.
	FormatJSON Format = "json"
	// FormatYAML decodes templates with yaml.v3.
	FormatYAML Format = "yaml"
)

// FormatForPath picks the decoder from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Template describes one automaton.
type Template struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Rows   int      `json:"rows" yaml:"rows" validate:"gt=0"`
	Cols   int      `json:"cols" yaml:"cols" validate:"gt=0"`
	States int      `json:"states" yaml:"states" validate:"gt=0,lte=256"`
	Rules  []string `json:"rules" yaml:"rules"`
	Origin [][]int  `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// DefaultOrigin is the seed used when a template carries none.
func DefaultOrigin() [][]int { return [][]int{{1}} }

var validate = validator.New()

// Validate checks the structural limits of the template.
func (t Template) Validate() error {
	if err := validate.Struct(t); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v fails %s=%s", strings.ToLower(fe.Field()), fe.Value(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidTemplate, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return nil
}

// Load reads and decodes the template at path.
func Load(path string) (Template, []Warning, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Template{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Template{}, nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	t, warnings, err := Decode(f, format)
	if err != nil {
		return Template{}, warnings, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, warnings, nil
}

// Decode parses a template document. Keys are matched case-insensitively so
// upper-case documents ("ROWS", "RULES", ...) load as well.
func Decode(r io.Reader, format Format) (Template, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Template{}, nil, fmt.Errorf("read template: %w", err)
	}

	raw := map[string]any{}
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return Template{}, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Template{}, nil, fmt.Errorf("decode %s template: %w", format, err)
	}

	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		fields[strings.ToLower(k)] = v
	}

	var t Template
	var warnings []Warning
	if name, ok := fields["name"].(string); ok {
		t.Name = name
	}
	for key, dst := range map[string]*int{"rows": &t.Rows, "cols": &t.Cols, "states": &t.States} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		n, ok := toInt(v)
		if !ok {
			return Template{}, nil, fmt.Errorf("%w: %s is not an integer: %v", ErrInvalidTemplate, key, v)
		}
		*dst = n
	}
	if err := t.Validate(); err != nil {
		return Template{}, nil, err
	}

	t.Rules, warnings = decodeRules(fields["rules"], warnings)
	t.Origin, warnings = decodeOrigin(fields["origin"], warnings)
	return t, warnings, nil
}

func decodeRules(v any, warnings []Warning) ([]string, []Warning) {
	switch rules := v.(type) {
	case nil:
		return nil, append(warnings, Warning{Field: "rules", Message: "missing, automaton has no rules"})
	case string:
		return splitRules(rules), warnings
	case []any:
		out := make([]string, 0, len(rules))
		for i, r := range rules {
			s, ok := r.(string)
			if !ok {
				warnings = append(warnings, Warning{Field: fmt.Sprintf("rules[%d]", i), Message: fmt.Sprintf("%v is not a string, skipped", r)})
				continue
			}
			out = append(out, s)
		}
		return out, warnings
	default:
		return nil, append(warnings, Warning{Field: "rules", Message: fmt.Sprintf("unsupported %T, automaton has no rules", v)})
	}
}

// splitRules accepts a comma or whitespace separated rule list.
func splitRules(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func decodeOrigin(v any, warnings []Warning) ([][]int, []Warning) {
	if v == nil {
		return nil, warnings
	}
	rows, ok := v.([]any)
	if !ok || len(rows) == 0 {
		return nil, append(warnings, Warning{Field: "origin", Message: "not a list of rows, using default"})
	}
	out := make([][]int, len(rows))
	for r, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, append(warnings, Warning{Field: "origin", Message: fmt.Sprintf("row %d is not a list, using default", r)})
		}
		out[r] = make([]int, len(cells))
		for c, cell := range cells {
			n, ok := toInt(cell)
			if !ok {
				return nil, append(warnings, Warning{Field: "origin", Message: fmt.Sprintf("cell (%d,%d)=%v is not an integer, using default", r, c, cell)})
			}
			out[r][c] = n
		}
	}
	return out, warnings
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
