package main

import (
	"time"

	"github.com/spf13/cobra"

	"cmr-ca/internal/tui"
)

func (c *cli) tuiCmd() *cobra.Command {
	var (
		interval  time.Duration
		overrides map[string]string
	)
	cmd := &cobra.Command{
		Use:   "tui <preset|template>",
		Short: "Explore an automaton interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.open(args[0], overrides)
			if err != nil {
				return err
			}
			return tui.Run(e, interval)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "delay between generations while playing")
	cmd.Flags().StringToStringVar(&overrides, "set", nil, "template overrides such as rows=24,cols=60")
	return cmd
}
