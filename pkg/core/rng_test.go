package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillStatesDeterministic(t *testing.T) {
	a := make([]int, 64)
	b := make([]int, 64)
	FillStates(NewRNG(3), a, 4, 0.5)
	FillStates(NewRNG(3), b, 4, 0.5)
	assert.Equal(t, a, b)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 4)
	}
}

func TestFillStatesEdges(t *testing.T) {
	buf := []int{5, 5, 5}
	FillStates(NewRNG(1), buf, 1, 1)
	assert.Equal(t, []int{0, 0, 0}, buf)

	buf = []int{5, 5, 5}
	FillStates(NewRNG(1), buf, 2, 0)
	assert.Equal(t, []int{0, 0, 0}, buf)
}

func TestIntN(t *testing.T) {
	r := NewRNG(9)
	assert.Equal(t, 0, r.IntN(0))
	for i := 0; i < 100; i++ {
		v := r.IntN(3)
		assert.True(t, v >= 0 && v < 3)
	}
}
