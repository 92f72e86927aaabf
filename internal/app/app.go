//go:build ebiten

package app

import (
	"fmt"

	"cmr-ca/internal/cmr"
	"cmr-ca/internal/core"
	"cmr-ca/internal/render"
	"cmr-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts an automaton to the ebiten.Game interface.
type Game struct {
	a       core.Automaton
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	brush    uint8
	status   string

	pendingRules chan []string
}

type ruleSetter interface {
	SetRules(rules []string) []cmr.Warning
}

// New constructs a paused Game for a.
func New(a core.Automaton, scale, rate, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := a.Size()
	g := &Game{
		a:        a,
		painter:  render.NewGridPainter(size.W, size.H, render.Palette(a.States())),
		overlay:  ui.NewOverlay(a, scale),
		timer:    core.NewFixedStep(rate),
		scale:    scale,
		hudWidth: hudWidth,
		paused:   true,
		brush:    uint8(min(1, a.States()-1)),

		pendingRules: make(chan []string, 1),
	}
	g.hud = ui.NewHUD(a, hudWidth, g)
	return g
}

// Paused reports whether autoplay is off.
func (g *Game) Paused() bool { return g.paused }

// Brush returns the state painted by mouse clicks.
func (g *Game) Brush() uint8 { return g.brush }

// Rate returns the autoplay speed in generations per second.
func (g *Game) Rate() int { return g.timer.Rate() }

// SetRate changes the autoplay speed.
func (g *Game) SetRate(gps int) { g.timer.SetRate(gps) }

// Status returns the last error raised by an edit or step.
func (g *Game) Status() string { return g.status }

// ReplaceRules queues a new rule set, applied on the next frame. It is safe
// to call from any goroutine; a rule set not yet applied is superseded.
func (g *Game) ReplaceRules(rules []string) {
	for {
		select {
		case g.pendingRules <- rules:
			return
		default:
		}
		select {
		case <-g.pendingRules:
		default:
		}
	}
}

func (g *Game) applyPendingRules() {
	select {
	case rules := <-g.pendingRules:
		rs, ok := g.a.(ruleSetter)
		if !ok {
			return
		}
		if warnings := rs.SetRules(rules); len(warnings) > 0 {
			g.status = fmt.Sprintf("rules reloaded, %d skipped", len(warnings))
			return
		}
		g.status = "rules reloaded"
	default:
	}
}

// Update handles per-frame logic and advances the automaton.
func (g *Game) Update() error {
	g.applyPendingRules()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.timer.Sync()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.report(g.a.Step())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.a.Back(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		_, err := g.a.Forward(1)
		g.report(err)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.a.Reset()
		g.paused = true
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) && i < g.a.States() {
			g.brush = uint8(i)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.a.Size().W * g.scale)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if row, col, ok := g.overlay.Hovered(); ok {
			g.report(g.a.Set(row, col, g.brush))
		}
	}

	if !g.paused && g.timer.ShouldStep() {
		_, err := g.a.Forward(1)
		if err != nil {
			g.paused = true
		}
		g.report(err)
	}
	return nil
}

func (g *Game) report(err error) {
	if err != nil {
		g.status = err.Error()
		return
	}
	g.status = ""
}

// Draw renders the live generation.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.a.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.a.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.a.Size()
	h := s.H * g.scale
	if g.hudWidth > 0 {
		h = max(h, ui.MinPanelHeight)
	}
	return s.W*g.scale + g.hudWidth, h
}
