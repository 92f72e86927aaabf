package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// FillStates fills the buffer with values in [0, states). With density below
// 1 each cell is left at 0 with probability 1-density before a state is drawn.
func FillStates(r *RNG, buf []int, states int, density float64) {
	for i := range buf {
		buf[i] = 0
		if states <= 1 {
			continue
		}
		if density < 1 && r.r.Float64() >= density {
			continue
		}
		buf[i] = r.r.IntN(states)
	}
}
