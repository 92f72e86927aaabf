// Package presets registers the bundled automaton templates with the core
// registry.
package presets

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"cmr-ca/internal/core"
	"cmr-ca/internal/logging"
	"cmr-ca/internal/template"
)

//go:embed templates/*.yaml
var files embed.FS

var bundled = map[string]template.Template{}

// Names lists the bundled templates in sorted order.
func Names() []string {
	names := make([]string, 0, len(bundled))
	for name := range bundled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the bundled template called name.
func Lookup(name string) (template.Template, bool) {
	t, ok := bundled[name]
	if !ok {
		return template.Template{}, false
	}
	t.Rules = append([]string(nil), t.Rules...)
	return t, true
}

// Open builds the bundled template called name with the overrides in cfg
// applied. Dropped rules and origins are logged to the default logger.
func Open(name string, cfg map[string]string) (core.Automaton, error) {
	base, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	t, opts := template.FromMap(base, cfg)
	e, warnings, err := template.Build(t, opts)
	if err != nil {
		return nil, err
	}
	logging.Warnings(slog.Default(), "template entry replaced", warnings, "preset", name)
	return e, nil
}

// Resolve returns the bundled template called src, or loads src as a
// template file when no preset has that name.
func Resolve(src string) (template.Template, []template.Warning, error) {
	if t, ok := Lookup(src); ok {
		return t, nil, nil
	}
	return template.Load(src)
}

func load() error {
	entries, err := fs.ReadDir(files, "templates")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		p := path.Join("templates", entry.Name())
		f, err := files.Open(p)
		if err != nil {
			return err
		}
		t, _, err := template.Decode(f, template.FormatYAML)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if t.Name == "" {
			t.Name = strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		}
		bundled[t.Name] = t
	}
	return nil
}

func init() {
	if err := load(); err != nil {
		panic(fmt.Sprintf("presets: %v", err))
	}
	for _, name := range Names() {
		core.Register(name, func(cfg map[string]string) (core.Automaton, error) {
			return Open(name, cfg)
		})
	}
}
