package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cmr-ca/internal/template"
)

var errInvalid = errors.New("invalid templates")

func (c *cli) validateCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "validate <template>...",
		Short: "Check template files and report rules that would be dropped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if watch {
				if len(args) != 1 {
					return errors.New("--watch takes exactly one template")
				}
				c.log.Info("watching template", "path", args[0])
				return template.Watch(cmd.Context(), args[0], func(t template.Template, warnings []template.Warning, err error) {
					report(out, args[0], t, warnings, err)
				})
			}

			bad := 0
			for _, path := range args {
				t, warnings, err := template.Load(path)
				if !report(out, path, t, warnings, err) {
					bad++
				}
			}
			if bad > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalid, bad, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-validate whenever the file changes")
	return cmd
}

// report prints the outcome of validating one template and reports whether
// it is usable.
func report(w io.Writer, path string, t template.Template, warnings []template.Warning, err error) bool {
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}
	_, buildWarnings, err := template.Build(t, template.DefaultBuildOptions())
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return false
	}
	warnings = append(warnings, buildWarnings...)
	fmt.Fprintf(w, "%s: %s %dx%d, %d states, %d rules, %d warnings\n",
		path, t.Name, t.Rows, t.Cols, t.States, len(t.Rules), len(warnings))
	for _, warn := range warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
	return true
}
