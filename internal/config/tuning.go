package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned when a tuning value is out of range.
var ErrInvalidTuning = errors.New("invalid tuning")

// Floor policies: what happens when the actor reaches the bottom of the playfield.
const (
	// FloorDrain damages the actor on every tick it rests on the floor.
	FloorDrain = "drain"
	// FloorRespawn damages once and moves the actor back to its spawn height.
	FloorRespawn = "respawn"
)

// Tuning holds every gameplay constant. Units are logical pixels and ticks
// (one tick per frame at 60 Hz) unless a field says otherwise.
type Tuning struct {
	Playfield Playfield `yaml:"playfield"`
	Actor     Actor     `yaml:"actor"`
	Spawn     Spawn     `yaml:"spawn"`
	Speed     Speed     `yaml:"speed"`
	Scoring   Scoring   `yaml:"scoring"`
	Lives     int       `yaml:"lives"`
	Particles Particles `yaml:"particles"`
	Message   Message   `yaml:"message"`
	Effects   Effects   `yaml:"effects"`

	FloorPolicy string `yaml:"floor_policy"`
}

// Playfield is the logical size of the game area.
type Playfield struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Actor holds the controllable actor's physics.
type Actor struct {
	X           float64 `yaml:"x"`
	StartY      float64 `yaml:"start_y"`
	Size        float64 `yaml:"size"`
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // negative is up
}

// Spawn holds per-tick spawn probabilities and entity sizes.
type Spawn struct {
	HazardChance float64 `yaml:"hazard_chance"`
	BonusChance  float64 `yaml:"bonus_chance"`
	HazardSize   float64 `yaml:"hazard_size"`
	BonusSize    float64 `yaml:"bonus_size"`
	Margin       float64 `yaml:"margin"` // keep-out band at top and bottom for spawns
	SpinRate     float64 `yaml:"spin_rate"`
}

// Speed holds the scroll speed and its per-tick ramp.
type Speed struct {
	Base float64 `yaml:"base"`
	Ramp float64 `yaml:"ramp"`
}

// Scoring holds score awards.
type Scoring struct {
	HazardPassed   int `yaml:"hazard_passed"`
	BonusCollected int `yaml:"bonus_collected"`
}

// Particles holds burst parameters.
type Particles struct {
	Count    int     `yaml:"count"`
	Lifetime int     `yaml:"lifetime"`
	Spread   float64 `yaml:"spread"`
}

// Message holds the advisory message rotation.
type Message struct {
	Ticks int `yaml:"ticks"`
}

// Effects holds cosmetic effect durations in milliseconds.
type Effects struct {
	PoweredMillis int `yaml:"powered_ms"`
	DamagedMillis int `yaml:"damaged_ms"`
}

// DefaultTuning returns the tuning the game ships with.
func DefaultTuning() Tuning {
	return Tuning{
		Playfield: Playfield{Width: 800, Height: 400},
		Actor: Actor{
			X:           100,
			StartY:      200,
			Size:        30,
			Gravity:     0.5,
			JumpImpulse: -8,
		},
		Spawn: Spawn{
			HazardChance: 0.02,
			BonusChance:  0.005,
			HazardSize:   40,
			BonusSize:    30,
			Margin:       50,
			SpinRate:     0.1,
		},
		Speed:   Speed{Base: 2, Ramp: 0.001},
		Scoring: Scoring{HazardPassed: 10, BonusCollected: 50},
		Lives:   3,
		Particles: Particles{
			Count:    8,
			Lifetime: 30,
			Spread:   6,
		},
		Message:     Message{Ticks: 180},
		Effects:     Effects{PoweredMillis: 1000, DamagedMillis: 200},
		FloorPolicy: FloorRespawn,
	}
}

// LoadTuning reads a YAML file over DefaultTuning. Fields missing from the
// file keep their defaults. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate checks that every value is usable by the engine.
func (t Tuning) Validate() error {
	switch {
	case t.Playfield.Width <= 0 || t.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield must be positive, got %vx%v", ErrInvalidTuning, t.Playfield.Width, t.Playfield.Height)
	case t.Actor.Size <= 0 || t.Actor.Size >= t.Playfield.Height:
		return fmt.Errorf("%w: actor size %v does not fit the playfield", ErrInvalidTuning, t.Actor.Size)
	case t.Actor.StartY < 0 || t.Actor.StartY > t.Playfield.Height-t.Actor.Size:
		return fmt.Errorf("%w: actor start_y %v outside the playfield", ErrInvalidTuning, t.Actor.StartY)
	case !isProbability(t.Spawn.HazardChance) || !isProbability(t.Spawn.BonusChance):
		return fmt.Errorf("%w: spawn chances must be in [0,1]", ErrInvalidTuning)
	case t.Spawn.HazardSize <= 0 || t.Spawn.BonusSize <= 0:
		return fmt.Errorf("%w: spawn sizes must be positive", ErrInvalidTuning)
	case t.Spawn.Margin < 0 || 2*t.Spawn.Margin >= t.Playfield.Height:
		return fmt.Errorf("%w: spawn margin %v leaves no safe band", ErrInvalidTuning, t.Spawn.Margin)
	case t.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalidTuning, t.Lives)
	case t.Speed.Base < 0 || t.Speed.Ramp < 0:
		return fmt.Errorf("%w: speed must not decrease", ErrInvalidTuning)
	case t.Particles.Count < 0 || t.Particles.Lifetime <= 0:
		return fmt.Errorf("%w: particle count/lifetime out of range", ErrInvalidTuning)
	case t.Message.Ticks <= 0:
		return fmt.Errorf("%w: message ticks must be positive", ErrInvalidTuning)
	case t.Effects.PoweredMillis < 0 || t.Effects.DamagedMillis < 0:
		return fmt.Errorf("%w: effect durations must not be negative", ErrInvalidTuning)
	case t.FloorPolicy != FloorDrain && t.FloorPolicy != FloorRespawn:
		return fmt.Errorf("%w: unknown floor_policy %q", ErrInvalidTuning, t.FloorPolicy)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
