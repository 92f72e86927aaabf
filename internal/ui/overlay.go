//go:build ebiten

package ui

import (
	"image/color"

	"cmr-ca/internal/core"
	"cmr-ca/internal/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type gridProvider interface {
	Grid() grid.Reader
}

// Overlay draws cell borders, the hovered cell and the cells that changed
// since the previous generation.
type Overlay struct {
	a     core.Automaton
	scale int

	showLines   bool
	showChanges bool

	hoverRow, hoverCol int
	hovering           bool

	pixel     *ebiten.Image
	changeImg *ebiten.Image
	changeBuf []byte
}

// NewOverlay constructs an overlay for a drawn at scale pixels per cell.
func NewOverlay(a core.Automaton, scale int) *Overlay {
	o := &Overlay{a: a, scale: scale, showLines: scale >= 6}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update tracks the mouse and toggles layers: G for borders, D for changes.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showLines = !o.showLines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showChanges = !o.showChanges
	}
	x, y := ebiten.CursorPosition()
	o.hoverRow, o.hoverCol, o.hovering = cellAt(x, y, o.scale, o.a.Size())
}

// Hovered returns the cell under the mouse.
func (o *Overlay) Hovered() (row, col int, ok bool) {
	return o.hoverRow, o.hoverCol, o.hovering
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.a.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := max(o.scale, 1)

	if o.showChanges {
		if provider, ok := o.a.(gridProvider); ok {
			o.drawChanges(screen, provider.Grid(), size, scale)
		}
	}
	if o.showLines {
		line := color.RGBA{R: 40, G: 40, B: 48, A: 255}
		for c := 0; c <= size.W; c++ {
			o.drawRect(screen, float64(c*scale), 0, 1, float64(size.H*scale), line)
		}
		for r := 0; r <= size.H; r++ {
			o.drawRect(screen, 0, float64(r*scale), float64(size.W*scale), 1, line)
		}
	}
	if o.hovering {
		x, y, s := float64(o.hoverCol*scale), float64(o.hoverRow*scale), float64(scale)
		hl := color.RGBA{R: 255, G: 200, B: 60, A: 255}
		o.drawRect(screen, x, y, s, 1, hl)
		o.drawRect(screen, x, y+s-1, s, 1, hl)
		o.drawRect(screen, x, y, 1, s, hl)
		o.drawRect(screen, x+s-1, y, 1, s, hl)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// drawChanges tints the cells whose state differs from the generation
// before the cursor.
func (o *Overlay) drawChanges(screen *ebiten.Image, r grid.Reader, size core.Size, scale int) {
	if r.Cursor() == 0 {
		return
	}
	prev, ok := r.Generation(r.Cursor() - 1)
	if !ok {
		return
	}
	live := r.Snapshot()
	total := size.W * size.H
	if o.changeImg == nil || o.changeImg.Bounds().Dx() != size.W || o.changeImg.Bounds().Dy() != size.H {
		o.changeImg = ebiten.NewImage(size.W, size.H)
		o.changeBuf = make([]byte, 4*total)
	}
	tint := color.RGBA{R: 28, G: 71, B: 96, A: 110} // premultiplied
	for i, v := range live.Cells() {
		base := i * 4
		if v == prev.Cells()[i] {
			clear(o.changeBuf[base : base+4])
			continue
		}
		o.changeBuf[base+0] = tint.R
		o.changeBuf[base+1] = tint.G
		o.changeBuf[base+2] = tint.B
		o.changeBuf[base+3] = tint.A
	}
	o.changeImg.WritePixels(o.changeBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.changeImg, op)
}
