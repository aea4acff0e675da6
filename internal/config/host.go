package config

import "time"

// Host rendering. The canvas maps the logical playfield onto whatever
// terminal it gets, but never renders larger than this.
const (
	MaxRenderWidth  = 160 // Terminal columns
	MaxRenderHeight = 50  // Terminal rows
)

// Frame rate of the page loop; the engine advances one tick per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Inactivity limits for SSH sessions.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
