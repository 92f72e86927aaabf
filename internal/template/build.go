package template

import (
	"fmt"
	"strconv"
	"strings"

	"cmr-ca/internal/cmr"
	"cmr-ca/internal/grid"
	"cmr-ca/pkg/core"
)

// BuildOptions controls how a template seeds its engine.
type BuildOptions struct {
	// Resize rebuilds the grid at the origin's size when the origin does not fit.
	Resize bool
	// Random replaces the origin with a random board drawn from Seed.
	Random  bool
	Seed    int64
	Density float64
}

// DefaultBuildOptions returns the standard options.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Seed: 42, Density: 0.5}
}

// Build creates the history and engine described by t and seeds generation 0
// with its origin. Rules and origins that cannot be used are reported as
// warnings; only an invalid size or state count fails.
func Build(t Template, opts BuildOptions) (*cmr.Engine, []Warning, error) {
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	h, err := grid.New(t.Rows, t.Cols, t.States)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}

	name := t.Name
	if name == "" {
		name = "cmr"
	}
	e := cmr.New(h, t.Rules, cmr.WithName(name))
	var warnings []Warning
	for _, w := range e.Warnings() {
		warnings = append(warnings, Warning{Field: fmt.Sprintf("rules[%d]", w.Index), Message: w.Err.Error()})
	}

	origin := t.Origin
	switch {
	case opts.Random:
		origin = RandomOrigin(t.Rows, t.Cols, t.States, opts.Seed, opts.Density)
	case len(origin) == 0:
		origin = DefaultOrigin()
	}
	before := len(e.Warnings())
	if err := e.LoadTemplate(origin, opts.Resize); err != nil {
		warnings = append(warnings, Warning{Field: "origin", Message: fmt.Sprintf("not loaded: %v", err)})
	}
	for _, w := range e.Warnings()[before:] {
		warnings = append(warnings, Warning{Field: "rules", Message: w.Err.Error()})
	}
	return e, warnings, nil
}

// RandomOrigin draws a deterministic rows x cols board with values in
// [0, states).
func RandomOrigin(rows, cols, states int, seed int64, density float64) [][]int {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	rng := core.NewRNG(seed)
	buf := make([]int, rows*cols)
	core.FillStates(rng, buf, states, density)
	out := make([][]int, rows)
	for r := range out {
		out[r] = buf[r*cols : (r+1)*cols]
	}
	return out
}

// FromMap applies flag-style overrides to a template and build options.
// Recognized keys: name, rows, cols, states, rules (comma separated), resize,
// random, seed, density. Unparseable values are ignored.
func FromMap(t Template, cfg map[string]string) (Template, BuildOptions) {
	opts := DefaultBuildOptions()
	if cfg == nil {
		return t, opts
	}
	if v, ok := cfg["name"]; ok && v != "" {
		t.Name = v
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			t.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			t.Cols = parsed
		}
	}
	if v, ok := cfg["states"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= grid.MaxStates {
			t.States = parsed
		}
	}
	if v, ok := cfg["rules"]; ok && strings.TrimSpace(v) != "" {
		t.Rules = splitRules(v)
	}
	if v, ok := cfg["resize"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			opts.Resize = parsed
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			opts.Random = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			opts.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			opts.Density = parsed
		}
	}
	return t, opts
}
