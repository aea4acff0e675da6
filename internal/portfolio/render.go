package portfolio

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/object"
)

var (
	colorPage     = colorful.MustParseHex("#0F0F1A")
	colorHeader   = colorful.MustParseHex("#16213E")
	colorLogo     = colorful.MustParseHex("#42A5F5")
	colorText     = colorful.MustParseHex("#E0E0E0")
	colorMuted    = colorful.MustParseHex("#8A8FA8")
	colorConsole  = colorful.MustParseHex("#000000")
	colorOverlay  = colorful.MustParseHex("#000000")
	colorGlitch   = colorful.MustParseHex("#F44336")
	colorGameOver = colorful.MustParseHex("#212121")
)

const lineHeight = 22

// Frame runs one page frame: the engine steps and everything is painted.
// The caller clears the surface first.
func (p *Page) Frame(s draw.Surface) {
	p.seq.Poll()
	s.Save()
	if dx, rot := p.shakeOffset(); dx != 0 || rot != 0 {
		s.Translate(Width/2+dx, Height/2)
		s.Rotate(rot)
		s.Translate(-Width/2, -Height/2)
	}

	s.FillRect(0, 0, Width, Height, colorPage)
	p.drawHeader(s)
	if p.panel {
		p.drawDebugMode(s)
	} else {
		p.drawContent(s)
	}
	s.Restore()

	if p.overlay != nil {
		p.drawOverlay(s)
	}
}

func (p *Page) drawHeader(s draw.Surface) {
	s.FillRect(0, 0, Width, 60, colorHeader)
	s.FillRect(p.logo.X, p.logo.Y, p.logo.W, p.logo.H, colorLogo)
	cx, cy := p.logo.Center()
	s.FillText(cx, cy, p.content.Logo, object.ColorInk, draw.AlignCenter)
	s.FillText(Width-20, 30, p.content.Name, colorText, draw.AlignRight)
}

func (p *Page) drawContent(s draw.Surface) {
	y := 100.0
	s.FillText(Width/2, y, p.content.Name, colorText, draw.AlignCenter)
	y += lineHeight
	s.FillText(Width/2, y, p.content.Tagline, colorLogo, draw.AlignCenter)

	y += 2 * lineHeight
	s.FillText(40, y, "About", colorText, draw.AlignLeft)
	for _, line := range p.content.About {
		y += lineHeight
		s.FillText(40, y, line, colorMuted, draw.AlignLeft)
	}

	y += 2 * lineHeight
	s.FillText(40, y, "Projects", colorText, draw.AlignLeft)
	for _, pr := range p.content.Projects {
		y += lineHeight
		s.FillText(40, y, "* "+pr.Title, colorText, draw.AlignLeft)
		s.FillText(Width-40, y, pr.Stack, colorMuted, draw.AlignRight)
	}

	s.FillText(Width/2, Height-20, "[q] quit", colorMuted, draw.AlignCenter)
}

func (p *Page) drawDebugMode(s draw.Surface) {
	console := 70.0
	s.FillRect(20, console, Width-40, 120, colorConsole)
	for i := 0; i < p.revealed && i < len(p.content.Console); i++ {
		line := p.content.Console[i]
		c := object.ColorDebug
		switch {
		case strings.HasPrefix(line, "[ERROR]"):
			c = object.ColorError
		case strings.HasPrefix(line, "[WARNING]"):
			c = object.ColorWarning
		}
		s.FillText(30, console+16+float64(i)*lineHeight, line, c, draw.AlignLeft)
	}

	hud := p.playfield.Y - 20
	s.FillText(p.playfield.X, hud, fmt.Sprintf("Score: %d", p.score), object.ColorMessage, draw.AlignLeft)
	s.FillText(p.playfield.X+160, hud, fmt.Sprintf("Lives: %d", p.lives), object.ColorDamaged, draw.AlignLeft)
	s.FillText(p.playfield.Right(), hud, "[space] jump  [r] restart  [esc] exit", colorMuted, draw.AlignRight)

	if p.engine == nil {
		s.FillRect(p.playfield.X, p.playfield.Y, p.playfield.W, p.playfield.H, object.ColorBackground)
		return
	}

	s.Save()
	s.Translate(p.playfield.X, p.playfield.Y)
	p.engine.Frame(s)
	if p.gameOver {
		p.drawGameOver(s)
	}
	s.Restore()
}

// drawGameOver paints the final score panel in playfield coordinates.
func (p *Page) drawGameOver(s draw.Surface) {
	w, h := p.playfield.W, p.playfield.H
	s.FillRect(w/2-160, h/2-60, 320, 120, colorGameOver)
	s.FillText(w/2, h/2-30, "GAME OVER", object.ColorError, draw.AlignCenter)
	s.FillText(w/2, h/2, fmt.Sprintf("Final Score: %d", p.finalScore), colorText, draw.AlignCenter)
	s.FillText(w/2, h/2+30, "[r] restart  [esc] exit", colorMuted, draw.AlignCenter)
}

func (p *Page) drawOverlay(s draw.Surface) {
	s.SetAlpha(0.9)
	s.FillRect(0, 0, Width, Height, colorOverlay)
	s.SetAlpha(1)

	y := Height/2 - float64(len(p.overlay)-1)*lineHeight
	for _, line := range p.overlay {
		s.FillText(Width/2, y, line, colorGlitch, draw.AlignCenter)
		y += 2 * lineHeight
	}
}
