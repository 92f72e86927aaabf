package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmr-ca/internal/grid"
)

func TestRunKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	jobs := []Job{
		{Source: "shifter", Steps: 3, Overrides: map[string]string{"cols": "10"}},
		{Source: "missing.yaml", Steps: 1},
		{Source: "diamond", Steps: 2, Overrides: map[string]string{"rows": "7", "cols": "7"}, Output: filepath.Join(dir, "diamond.png"), Scale: 2},
		{Source: "sierpinski", Steps: 4, Overrides: map[string]string{"cols": "9"}, Output: filepath.Join(dir, "tri.png")},
		{Source: "brain", Steps: -1},
	}

	results, err := Run(context.Background(), jobs, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, res := range results {
		assert.Equal(t, jobs[i].Source, res.Job.Source)
	}

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "shifter", results[0].Name)
	assert.Equal(t, 3, results[0].Generation)
	assert.Equal(t, []int{7, 3}, results[0].Population)

	assert.Error(t, results[1].Err)

	require.NoError(t, results[2].Err)
	assert.Equal(t, []int{36, 13}, results[2].Population)
	info, err := os.Stat(jobs[2].Output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	require.NoError(t, results[3].Err)
	_, err = os.Stat(jobs[3].Output)
	assert.NoError(t, err)

	assert.ErrorIs(t, results[4].Err, ErrNoSteps)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, []Job{{Source: "diamond", Steps: 5}}, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestPopulation(t *testing.T) {
	assert.Equal(t, []int{2, 1, 1}, Population([]uint8{0, 2, 1, 0, 9}, 3))
}

func TestPeriod(t *testing.T) {
	h, err := grid.New(1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, Period(h))

	a := grid.NewBoard(1, 2)
	a.Put(0, 0, 1)
	b := grid.NewBoard(1, 2)
	b.Put(0, 1, 1)
	require.NoError(t, h.Advance(a))
	require.NoError(t, h.Advance(b))
	assert.Equal(t, 0, Period(h))
	require.NoError(t, h.Advance(a))
	assert.Equal(t, 2, Period(h))
	require.NoError(t, h.Advance(a))
	assert.Equal(t, 1, Period(h))
}
