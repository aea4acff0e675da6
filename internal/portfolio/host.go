package portfolio

// shakeFrames is how long the screen shake lasts (0.5s at 60 FPS).
const shakeFrames = 30

// shakeKeys are the horizontal offsets of the shake at each tenth of its
// duration. Rotation alternates with the sign of the offset.
var shakeKeys = [...]float64{0, -10, 10, -8, 8, -6, 6, -4, 4, -2}

// StartShake implements easteregg.Host.
func (p *Page) StartShake() {
	p.shakeFrame = 1
}

// ClearShake implements easteregg.Host.
func (p *Page) ClearShake() {
	p.shakeFrame = 0
}

// ShowOverlay implements easteregg.Host.
func (p *Page) ShowOverlay(lines []string) {
	p.overlay = append([]string(nil), lines...)
}

// HideOverlay implements easteregg.Host.
func (p *Page) HideOverlay() {
	p.overlay = nil
}

// ShowPanel implements easteregg.Host.
func (p *Page) ShowPanel() int {
	p.panel = true
	p.revealed = 0
	p.log.Debug("debug panel shown")
	return len(p.content.Console)
}

// RevealLine implements easteregg.Host.
func (p *Page) RevealLine(i int) {
	if i+1 > p.revealed {
		p.revealed = i + 1
	}
}

// HidePanel implements easteregg.Host.
func (p *Page) HidePanel() {
	p.panel = false
	p.revealed = 0
}

// DisplayScore implements game.Display.
func (p *Page) DisplayScore(n int) {
	p.score = n
}

// DisplayLives implements game.Display.
func (p *Page) DisplayLives(n int) {
	p.lives = n
}

// ShowGameOver implements game.Display.
func (p *Page) ShowGameOver(final int) {
	p.finalScore = final
	p.gameOver = true
}

// HideGameOver implements game.Display.
func (p *Page) HideGameOver() {
	p.gameOver = false
}

// shakeOffset returns the current shake translation and rotation and
// advances the shake by one frame.
func (p *Page) shakeOffset() (dx, rot float64) {
	if p.shakeFrame == 0 {
		return 0, 0
	}
	k := (p.shakeFrame - 1) * len(shakeKeys) / shakeFrames
	dx = shakeKeys[k]
	switch {
	case dx < 0:
		rot = 0.017 // about one degree
	case dx > 0:
		rot = -0.017
	}

	p.shakeFrame++
	if p.shakeFrame > shakeFrames {
		p.shakeFrame = 0
	}
	return dx, rot
}
