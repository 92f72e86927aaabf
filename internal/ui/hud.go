//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"cmr-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the side panel to the right of the grid.
type HUD struct {
	a     core.Automaton
	ctl   Controls
	width int

	panel        *ebiten.Image
	lastHeight   int
	panelOffsetX int
	minusRect    image.Rectangle
	plusRect     image.Rectangle

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for a. A width of zero disables it.
func NewHUD(a core.Automaton, width int, ctl Controls) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{a: a, ctl: ctl, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
		y := panelPadding + headerBaseline + 4*lineHeight + 6
		h.plusRect = image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		h.minusRect = image.Rect(h.plusRect.Min.X-buttonGap-buttonSize, y, h.plusRect.Min.X-buttonGap, y+buttonSize)
	}
	return h
}

// Update handles clicks on the rate buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := image.Pt(mx-h.panelOffsetX, my)
	switch {
	case p.In(h.minusRect):
		h.ctl.SetRate(max(h.ctl.Rate()-1, 1))
	case p.In(h.plusRect):
		h.ctl.SetRate(min(h.ctl.Rate()+1, maxRate))
	}
}

// Draw paints the panel anchored to the right edge of the grid.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := max(h.a.Size().H*scale, MinPanelHeight)
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.a.Name(), face, panelPadding, y, headerColor)
	for _, line := range statusLines(h.a, h.ctl) {
		y += lineHeight
		text.Draw(h.panel, line, face, panelPadding, y, textColor)
	}
	h.drawButton(h.minusRect, "-", h.ctl.Rate() > 1)
	h.drawButton(h.plusRect, "+", h.ctl.Rate() < maxRate)

	y = h.plusRect.Max.Y + lineHeight
	text.Draw(h.panel, "rules", face, panelPadding, y, headerColor)
	limit := max((height-y-3*lineHeight)/lineHeight, 1)
	for _, line := range ruleLines(h.a, limit) {
		y += lineHeight
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}

	if status := h.ctl.Status(); status != "" {
		text.Draw(h.panel, status, face, panelPadding, height-panelPadding-lineHeight, errorColor)
	}
	text.Draw(h.panel, "spc play  n step  <- -> history", face, panelPadding, height-panelPadding, dimColor)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	errorColor  = color.RGBA{R: 240, G: 110, B: 90, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 18
	buttonSize     = 20
	buttonGap      = 6
	headerBaseline = 14
	maxRate        = 120
)
