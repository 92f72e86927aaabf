package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"cmr-ca/internal/render"
)

func (c *cli) runCmd() *cobra.Command {
	var (
		steps     int
		trace     bool
		overrides map[string]string
	)
	cmd := &cobra.Command{
		Use:   "run <preset|template>",
		Short: "Step an automaton and print the final generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.open(args[0], overrides)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if trace {
				fmt.Fprintf(out, "gen %d\n", e.Generation())
				printGeneration(out, e)
			}
			for i := 0; i < steps; i++ {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := e.Step(); err != nil {
					return err
				}
				if trace {
					fmt.Fprintf(out, "gen %d\n", e.Generation())
					printGeneration(out, e)
				}
			}
			if !trace {
				fmt.Fprintf(out, "gen %d\n", e.Generation())
				printGeneration(out, e)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 10, "generations to compute")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every generation")
	cmd.Flags().StringToStringVar(&overrides, "set", nil, "template overrides such as rows=64,random=true")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var (
		steps     int
		out       string
		scale     int
		spacetime bool
		overrides map[string]string
	)
	cmd := &cobra.Command{
		Use:   "export <preset|template>",
		Short: "Step an automaton and write a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.open(args[0], overrides)
			if err != nil {
				return err
			}
			if _, err := e.Forward(steps); err != nil {
				return err
			}

			pal := render.Palette(e.States())
			var img *image.RGBA
			if spacetime {
				img, err = render.Spacetime(e.Grid(), pal, scale)
			} else {
				img, err = render.Frame(e.Cells(), e.Size(), pal, scale)
			}
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := render.WritePNG(f, img); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			c.log.Info("image written", "path", out, "generation", e.Generation(),
				"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 64, "generations to compute")
	cmd.Flags().StringVarP(&out, "out", "o", "out.png", "output file")
	cmd.Flags().IntVar(&scale, "scale", 4, "pixels per cell")
	cmd.Flags().BoolVar(&spacetime, "spacetime", false, "stack every generation of a 1-D automaton")
	cmd.Flags().StringToStringVar(&overrides, "set", nil, "template overrides such as rows=64,random=true")
	return cmd
}
