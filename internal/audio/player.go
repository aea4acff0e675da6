package audio

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/debugbird/internal/game"
	"github.com/tomz197/debugbird/internal/logging"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues on the system speaker. A Player that failed to
// initialize stays silent.
type Player struct {
	volume float64
	log    *log.Logger
	ready  bool
}

// Compile-time check that Player implements game.Sounds.
var _ game.Sounds = (*Player)(nil)

// NewPlayer creates a silent player; call Init to open the speaker.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	return &Player{volume: volume, log: logging.OrDiscard(logger)}
}

// Init opens the speaker. The player stays usable but silent on error.
func (p *Player) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.ready = true
	p.log.Debug("audio ready", "rate", int(sampleRate), "volume", p.volume)
	return nil
}

// Play implements game.Sounds. It does not block.
func (p *Player) Play(c game.Cue) {
	if !p.ready {
		return
	}
	s := CueStreamer(c, sampleRate, p.volume)
	if s == nil {
		p.log.Warn("unknown sound cue", "cue", int(c))
		return
	}
	speaker.Play(s)
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}
