// Package batch runs many automata to a fixed generation in parallel and
// summarizes where each one ended up.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cmr-ca/internal/cmr"
	"cmr-ca/internal/grid"
	"cmr-ca/internal/presets"
	"cmr-ca/internal/render"
	"cmr-ca/internal/template"
)

// ErrNoSteps indicates a job asking for a negative number of generations.
var ErrNoSteps = errors.New("steps must not be negative")

// Job describes one run.
type Job struct {
	// Source is a preset name or a template file path.
	Source string
	Steps  int
	// Output, when set, receives a PNG of the run: a space-time diagram for
	// 1-D automata, the final generation otherwise.
	Output string
	// Overrides are applied with template.FromMap.
	Overrides map[string]string
	Scale     int
}

// Result is the outcome of one Job.
type Result struct {
	Job        Job
	Name       string
	Generation int
	// Population counts the cells of each state in the final generation.
	Population []int
	// Period is the length of the cycle the run settled into, or 0 when the
	// final generation never appeared before.
	Period   int
	Warnings []template.Warning
	Err      error
}

// Options tunes Run.
type Options struct {
	// Workers caps concurrent jobs; values below 1 use runtime.NumCPU.
	Workers int
}

// Run executes jobs concurrently and returns one result per job in input
// order. A failing job is reported in its Result and does not stop the
// others; cancelling ctx does.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			res := runJob(gctx, job)
			results[i] = res
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runJob(ctx context.Context, job Job) Result {
	res := Result{Job: job}
	if job.Steps < 0 {
		res.Err = fmt.Errorf("%s: %w: %d", job.Source, ErrNoSteps, job.Steps)
		return res
	}

	tmpl, warnings, err := presets.Resolve(job.Source)
	res.Warnings = warnings
	if err != nil {
		res.Err = err
		return res
	}
	tmpl, opts := template.FromMap(tmpl, job.Overrides)
	e, warnings, err := template.Build(tmpl, opts)
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", job.Source, err)
		return res
	}
	res.Name = e.Name()

	for i := 0; i < job.Steps; i++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		if err := e.Step(); err != nil {
			res.Err = fmt.Errorf("%s: %w", job.Source, err)
			return res
		}
	}
	res.Generation = e.Generation()
	res.Population = Population(e.Cells(), e.States())
	res.Period = Period(e.Grid())

	if job.Output != "" {
		if err := writeImage(e, job.Output, job.Scale); err != nil {
			res.Err = fmt.Errorf("%s: %w", job.Source, err)
		}
	}
	return res
}

// Population counts the cells of each state.
func Population(cells []uint8, states int) []int {
	counts := make([]int, states)
	for _, c := range cells {
		if int(c) < states {
			counts[c]++
		}
	}
	return counts
}

// Period returns the smallest p such that the live generation equals the one
// p generations earlier, or 0 when there is none.
func Period(r grid.Reader) int {
	live := r.Snapshot()
	for p := 1; p <= r.Cursor(); p++ {
		past, ok := r.Generation(r.Cursor() - p)
		if ok && past.Equal(live) {
			return p
		}
	}
	return 0
}

func writeImage(e *cmr.Engine, path string, scale int) error {
	pal := render.Palette(e.States())
	var (
		img *image.RGBA
		err error
	)
	if e.Neighborhood().OneDimensional() {
		img, err = render.Spacetime(e.Grid(), pal, scale)
	} else {
		img, err = render.Frame(e.Cells(), e.Size(), pal, scale)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
