package clock

import (
	"context"
	"time"
)

// DefaultFrameRate is the host refresh rate the game is tuned for.
const DefaultFrameRate = 60

// Driver calls a step function at a steady rate until the context ends or a
// step fails.
type Driver interface {
	Run(ctx context.Context, step func() error) error
}

// FixedRate steps once per Interval, sleeping off whatever time the step
// did not use. A slow step is not compensated for by extra steps.
type FixedRate struct {
	Interval time.Duration
}

// NewFixedRate returns a driver stepping fps times per second.
func NewFixedRate(fps int) FixedRate {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return FixedRate{Interval: time.Second / time.Duration(fps)}
}

// Run implements Driver. Returns nil when ctx is cancelled.
func (f FixedRate) Run(ctx context.Context, step func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		if err := step(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < f.Interval {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(f.Interval - elapsed):
			}
		}
	}
}

// Steps runs step exactly N times with no waiting.
type Steps int

// Run implements Driver.
func (n Steps) Run(ctx context.Context, step func() error) error {
	for i := 0; i < int(n); i++ {
		if ctx.Err() != nil {
			return nil
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
