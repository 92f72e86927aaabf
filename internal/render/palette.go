package render

import "image/color"

var (
	// Ground is the colour of state 0.
	Ground = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	// Peak is the colour of the highest state.
	Peak = color.RGBA{R: 240, G: 240, B: 232, A: 255}
)

// accents tint the intermediate states of multi-state automata.
var accents = []color.RGBA{
	{R: 230, G: 96, B: 48, A: 255},
	{R: 64, G: 164, B: 223, A: 255},
	{R: 120, G: 200, B: 90, A: 255},
	{R: 210, G: 180, B: 60, A: 255},
	{R: 170, G: 100, B: 210, A: 255},
}

// Palette returns one colour per state. State 0 is Ground and the last state
// is Peak. Up to five intermediate states get distinct accents; beyond that
// the intermediate states fade from Ground to Peak.
func Palette(states int) []color.RGBA {
	if states <= 0 {
		return nil
	}
	pal := make([]color.RGBA, states)
	pal[0] = Ground
	if states == 1 {
		return pal
	}
	pal[states-1] = Peak
	mid := states - 2
	for i := 1; i <= mid; i++ {
		if mid <= len(accents) {
			pal[i] = accents[i-1]
			continue
		}
		pal[i] = lerpRGBA(Ground, Peak, float64(i)/float64(states-1))
	}
	return pal
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
