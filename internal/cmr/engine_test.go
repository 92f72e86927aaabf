package cmr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmr-ca/internal/grid"
)

// Rule fixtures. An unconstrained slot is "00" (state >= 0).
const (
	centerOneToZero = "00001200000" // C == 1 -> 0
	alwaysOne       = "00000000001"
	alwaysZero      = "00000000000"
)

func newEngine(t *testing.T, rows, cols, states int, rules ...string) *Engine {
	t.Helper()
	h, err := grid.New(rows, cols, states)
	require.NoError(t, err)
	e := New(h, rules)
	require.Empty(t, e.Warnings())
	return e
}

func TestStepSingleCellDies(t *testing.T) {
	e := newEngine(t, 3, 3, 2, centerOneToZero)
	require.NoError(t, e.Set(1, 1, 1))

	require.NoError(t, e.Step())

	assert.Equal(t, make([]grid.Cell, 9), e.Cells())
	assert.Equal(t, 1, e.Generation())
	assert.Equal(t, 2, e.Generations())
}

func TestNeighborhoodOrderVonNeumann(t *testing.T) {
	// N=1 W=2 C=3 E=4 S=5
	seed := func(e *Engine) {
		require.NoError(t, e.Set(0, 1, 1))
		require.NoError(t, e.Set(1, 0, 2))
		require.NoError(t, e.Set(1, 1, 3))
		require.NoError(t, e.Set(1, 2, 4))
		require.NoError(t, e.Set(2, 1, 5))
	}

	e := newEngine(t, 3, 3, 6, "12223242520")
	seed(e)
	before := e.Cells()
	require.NoError(t, e.Step())
	assert.Equal(t, grid.Cell(0), e.Get(1, 1), "N,W,C,E,S rule must match")
	after := e.Cells()
	before[4] = 0
	assert.Equal(t, before, after, "only the center changes")

	swapped := newEngine(t, 3, 3, 6, "12423222520") // W and E exchanged
	seed(swapped)
	require.NoError(t, swapped.Step())
	assert.Equal(t, grid.Cell(3), swapped.Get(1, 1))

	assert.Equal(t, [][2]int{{-1, 0}, {0, -1}, {0, 0}, {0, 1}, {1, 0}}, VonNeumann.offsets)
}

func TestNeighborhoodOrderOneDimensional(t *testing.T) {
	// Shift a single live cell one position along the line each step.
	rules := []string{"1200001", "0212000"}

	row := newEngine(t, 1, 5, 2, rules...)
	assert.Equal(t, RowLine.Name(), row.Neighborhood().Name())
	require.NoError(t, row.Set(0, 0, 1))
	require.NoError(t, row.Step())
	assert.Equal(t, []grid.Cell{0, 1, 0, 0, 0}, row.Cells())
	require.NoError(t, row.Step())
	assert.Equal(t, []grid.Cell{0, 0, 1, 0, 0}, row.Cells())

	col := newEngine(t, 5, 1, 2, rules...)
	assert.Equal(t, ColumnLine.Name(), col.Neighborhood().Name())
	require.NoError(t, col.Set(0, 0, 1))
	require.NoError(t, col.Step())
	assert.Equal(t, []grid.Cell{0, 1, 0, 0, 0}, col.Cells())
}

func TestEdgesReadAsZero(t *testing.T) {
	// N != 0 -> 1. With wrap-around the top-left cell would see (1,0) as its
	// north neighbor; with a zero border it sees 0 and stays put.
	e := newEngine(t, 2, 2, 2, "03000000001")
	require.NoError(t, e.Set(1, 0, 1))

	require.NoError(t, e.Step())

	assert.Equal(t, []grid.Cell{0, 0, 1, 0}, e.Cells())
}

func TestRulePrecedence(t *testing.T) {
	first := newEngine(t, 2, 3, 2, alwaysOne, alwaysZero)
	require.NoError(t, first.Step())
	assert.Equal(t, []grid.Cell{1, 1, 1, 1, 1, 1}, first.Cells())

	second := newEngine(t, 2, 3, 2, alwaysZero, alwaysOne)
	require.NoError(t, second.Step())
	assert.Equal(t, make([]grid.Cell, 6), second.Cells())
}

func TestUnmatchedCellKeepsValue(t *testing.T) {
	e := newEngine(t, 3, 3, 3, "00002200001") // C == 2 -> 1
	require.NoError(t, e.Set(0, 0, 1))
	require.NoError(t, e.Set(2, 2, 2))

	require.NoError(t, e.Step())

	assert.Equal(t, grid.Cell(1), e.Get(0, 0))
	assert.Equal(t, grid.Cell(1), e.Get(2, 2))
	assert.Equal(t, grid.Cell(0), e.Get(1, 1))
}

func TestNewSkipsBadRules(t *testing.T) {
	h, err := grid.New(3, 3, 2)
	require.NoError(t, err)

	e := New(h, []string{"123", centerOneToZero, "00001500000", "00001200002"}, WithName("fixture"))

	assert.Equal(t, "fixture", e.Name())
	assert.Equal(t, 1, e.RuleCount())
	warnings := e.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, 0, warnings[0].Index)
	assert.ErrorIs(t, warnings[0].Err, ErrBadLength)
	assert.Equal(t, 2, warnings[1].Index)
	assert.ErrorIs(t, warnings[1].Err, ErrBadComparator)
	assert.Equal(t, 3, warnings[2].Index)
	assert.ErrorIs(t, warnings[2].Err, ErrBadState)
}

func TestEngineWithoutRulesNeverChanges(t *testing.T) {
	h, err := grid.New(2, 2, 2)
	require.NoError(t, err)
	e := New(h, []string{"bogus"})
	require.NoError(t, e.Set(0, 1, 1))

	require.NoError(t, e.Step())
	require.NoError(t, e.Step())

	assert.Equal(t, []grid.Cell{0, 1, 0, 0}, e.Cells())
	assert.Equal(t, 3, e.Generations())
}

func TestAddRule(t *testing.T) {
	e := newEngine(t, 3, 3, 2)

	err := e.AddRule("000000000")
	assert.ErrorIs(t, err, ErrBadLength)
	var re *RuleError
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, 0, e.RuleCount())

	require.NoError(t, e.AddRule(centerOneToZero))
	assert.Equal(t, 1, e.RuleCount())
	assert.Equal(t, centerOneToZero, e.Rules()[0].String())
}

func TestRemoveRule(t *testing.T) {
	e := newEngine(t, 3, 3, 2, alwaysOne, alwaysZero)

	assert.ErrorIs(t, e.RemoveRule(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, e.RemoveRule(-1), ErrIndexOutOfRange)
	assert.Equal(t, 2, e.RuleCount())

	require.NoError(t, e.RemoveRule(0))
	require.Len(t, e.Rules(), 1)
	assert.Equal(t, alwaysZero, e.Rules()[0].String())
}

func TestRulesReturnsCopy(t *testing.T) {
	e := newEngine(t, 3, 3, 2, centerOneToZero)
	rules := e.Rules()
	rules[0].Conditions[2].State = 0
	rules[0].Output = 1

	assert.Equal(t, centerOneToZero, e.Rules()[0].String())
}

func TestSetRulesReplacesWholesale(t *testing.T) {
	e := newEngine(t, 3, 3, 2, alwaysOne, alwaysZero)

	warnings := e.SetRules([]string{centerOneToZero, "short"})

	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Index)
	assert.Equal(t, 1, e.RuleCount())
	assert.Equal(t, centerOneToZero, e.Rules()[0].String())

	e.ClearRules()
	assert.Zero(t, e.RuleCount())
}

func TestStepBehindTailDiscardsFuture(t *testing.T) {
	e := newEngine(t, 1, 3, 2, "0000001") // always 1
	for i := 0; i < 4; i++ {
		require.NoError(t, e.Step())
	}
	assert.Equal(t, 5, e.Generations())

	assert.Equal(t, 1, e.Back(3))
	require.NoError(t, e.Step())

	assert.Equal(t, 3, e.Generations())
	assert.Equal(t, 2, e.Generation())
}

func TestForwardReplaysThenComputes(t *testing.T) {
	e := newEngine(t, 1, 3, 3, "0000001", "1010102") // first rule always wins
	require.NoError(t, e.Step())
	require.NoError(t, e.Step())
	e.Back(2)
	stored, ok := e.grid.Generation(1)
	require.True(t, ok)

	cursor, err := e.Forward(4)
	require.NoError(t, err)

	assert.Equal(t, 4, cursor)
	assert.Equal(t, 5, e.Generations())
	again, _ := e.grid.Generation(1)
	assert.True(t, stored.Equal(again))
}

func TestResetAndReplayClampsAtZero(t *testing.T) {
	e := newEngine(t, 2, 2, 2, alwaysOne)
	for i := 0; i < 3; i++ {
		require.NoError(t, e.Step())
	}

	e.Reset()

	assert.Equal(t, 1, e.Generations())
	assert.Equal(t, 0, e.grid.StepForward(5))
	assert.Equal(t, make([]grid.Cell, 4), e.Cells())
}

func TestSetOutOfRangeLeavesGridUnchanged(t *testing.T) {
	e := newEngine(t, 3, 3, 3)

	err := e.Set(0, 0, 3)

	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	assert.Equal(t, make([]grid.Cell, 9), e.Cells())
}

func TestLoadTemplateCentres(t *testing.T) {
	e := newEngine(t, 5, 5, 3, centerOneToZero)
	require.NoError(t, e.Step())

	require.NoError(t, e.LoadTemplate([][]int{{1, 2}, {2, 1}}, false))

	assert.Equal(t, 1, e.Generations())
	want := []grid.Cell{
		0, 0, 0, 0, 0,
		0, 1, 2, 0, 0,
		0, 2, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	}
	assert.Equal(t, want, e.Cells())
}

func TestLoadTemplateRejectsBadInput(t *testing.T) {
	e := newEngine(t, 3, 3, 2)
	require.NoError(t, e.Set(0, 0, 1))
	before := e.Cells()

	tests := []struct {
		name  string
		board [][]int
		want  error
	}{
		{"empty", nil, grid.ErrShapeMismatch},
		{"ragged", [][]int{{1, 0}, {1}}, grid.ErrShapeMismatch},
		{"value too large", [][]int{{0, 2}}, grid.ErrOutOfRange},
		{"negative value", [][]int{{-1}}, grid.ErrOutOfRange},
		{"too large without resize", [][]int{{1, 1, 1, 1}}, ErrTemplateTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.LoadTemplate(tt.board, false)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, e.Cells())
			assert.Equal(t, 1, e.Generations())
		})
	}
}

func TestLoadTemplateResize(t *testing.T) {
	e := newEngine(t, 2, 2, 2, centerOneToZero)
	require.NoError(t, e.Step())

	require.NoError(t, e.LoadTemplate([][]int{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, true))

	assert.Equal(t, 3, e.Size().W)
	assert.Equal(t, 3, e.Size().H)
	assert.Equal(t, 1, e.Generations())
	assert.Equal(t, 1, e.RuleCount(), "2-D rules survive a 2-D resize")
	require.NoError(t, e.Step())
	assert.Equal(t, grid.Cell(0), e.Get(1, 1))
}

func TestLoadTemplateResizeChangesNeighborhood(t *testing.T) {
	e := newEngine(t, 1, 2, 2, "1200001")

	require.NoError(t, e.LoadTemplate([][]int{{1, 0, 1}, {0, 1, 0}}, true))

	assert.Equal(t, VonNeumann.Name(), e.Neighborhood().Name())
	assert.Zero(t, e.RuleCount())
	warnings := e.Warnings()
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0].Err, ErrBadLength)
}
