package game

// Display receives pushed copies of the session values the page shows.
type Display interface {
	DisplayScore(n int)
	DisplayLives(n int)
	ShowGameOver(finalScore int)
	HideGameOver()
}

// Cue is a sound effect the engine asks for.
type Cue int

const (
	CueJump Cue = iota
	CueHit
	CueBonus
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueHit:
		return "hit"
	case CueBonus:
		return "bonus"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Sounds plays cues. Play must not block the tick.
type Sounds interface {
	Play(c Cue)
}

type nopDisplay struct{}

func (nopDisplay) DisplayScore(int) {}
func (nopDisplay) DisplayLives(int) {}
func (nopDisplay) ShowGameOver(int) {}
func (nopDisplay) HideGameOver()    {}

type nopSounds struct{}

func (nopSounds) Play(Cue) {}
