// Command cmrca runs, inspects and exports conditionally-matching-rule
// automata from the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"cmr-ca/internal/cmr"
	"cmr-ca/internal/logging"
	"cmr-ca/internal/presets"
	"cmr-ca/internal/template"
)

// cli carries the state shared by every subcommand.
type cli struct {
	logCfg logging.Config
	log    *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logCfg: logging.DefaultConfig()}
	root := &cobra.Command{
		Use:           "cmrca",
		Short:         "Conditionally matching rule cellular automata",
		Long:          "cmrca steps cellular automata whose rules compare every neighbour against a reference state, and renders or inspects the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.logCfg.Output = cmd.ErrOrStderr()
			logger, err := logging.New(c.logCfg)
			if err != nil {
				return err
			}
			c.log = logger
			return nil
		},
	}
	c.logCfg.Bind(root.PersistentFlags())

	root.AddCommand(
		c.runCmd(),
		c.exportCmd(),
		c.batchCmd(),
		c.validateCmd(),
		c.tuiCmd(),
		c.presetsCmd(),
	)
	return root
}

// open resolves src to a preset or template file and builds its engine.
func (c *cli) open(src string, overrides map[string]string) (*cmr.Engine, error) {
	t, warnings, err := presets.Resolve(src)
	logging.Warnings(c.log, "template entry replaced", warnings, "source", src)
	if err != nil {
		return nil, err
	}
	t, opts := template.FromMap(t, overrides)
	e, warnings, err := template.Build(t, opts)
	if err != nil {
		return nil, err
	}
	logging.Warnings(c.log, "template entry replaced", warnings, "source", src)
	c.log.Debug("automaton ready", "name", e.Name(), "rows", e.Size().H, "cols", e.Size().W,
		"states", e.States(), "rules", e.RuleCount(), "neighborhood", e.Neighborhood().Name())
	return e, nil
}

// printGeneration writes the live generation as one line per row.
func printGeneration(w io.Writer, e *cmr.Engine) {
	size := e.Size()
	cells := e.Cells()
	sep := ""
	if e.States() > 10 {
		sep = " "
	}
	for r := 0; r < size.H; r++ {
		fields := make([]string, size.W)
		for c := range fields {
			fields[c] = fmt.Sprint(cells[r*size.W+c])
		}
		fmt.Fprintln(w, strings.Join(fields, sep))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "cmrca:", err)
		stop()
		os.Exit(1)
	}
}
