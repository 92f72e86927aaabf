package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cmr-ca/internal/batch"
	"cmr-ca/internal/logging"
)

func (c *cli) batchCmd() *cobra.Command {
	var (
		steps     int
		workers   int
		outDir    string
		scale     int
		overrides map[string]string
	)
	cmd := &cobra.Command{
		Use:   "batch <preset|template>...",
		Short: "Run many automata concurrently and summarize them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := make([]batch.Job, len(args))
			for i, src := range args {
				jobs[i] = batch.Job{Source: src, Steps: steps, Overrides: overrides, Scale: scale}
				if outDir != "" {
					base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
					jobs[i].Output = filepath.Join(outDir, fmt.Sprintf("%02d-%s.png", i, base))
				}
			}

			c.log.Info("batch started", "jobs", len(jobs), "workers", workers, "steps", steps)
			results, err := batch.Run(cmd.Context(), jobs, batch.Options{Workers: workers})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SOURCE\tNAME\tGEN\tPOPULATION\tPERIOD\tSTATUS")
			failed := 0
			for _, res := range results {
				logging.Warnings(c.log, "template entry replaced", res.Warnings, "source", res.Job.Source)
				status := "ok"
				if res.Err != nil {
					status = res.Err.Error()
					failed++
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%d\t%s\n", res.Job.Source, res.Name, res.Generation, res.Population, res.Period, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 64, "generations to compute per automaton")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent jobs, 0 uses every CPU")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write one PNG per job into this directory")
	cmd.Flags().IntVar(&scale, "scale", 4, "pixels per cell in written images")
	cmd.Flags().StringToStringVar(&overrides, "set", nil, "template overrides applied to every job")
	return cmd
}
