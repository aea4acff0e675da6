// Package object holds the game's entities: the actor, hazards, bonuses and
// particles. Entities know how to move and draw themselves; the engine
// decides when they spawn, collide and die.
package object

import "github.com/lucasb-eyer/go-colorful"

// Palette
var (
	ColorBackground = colorful.MustParseHex("#1A1A2E")
	ColorGrid       = colorful.MustParseHex("#333333")
	ColorActor      = colorful.MustParseHex("#42A5F5")
	ColorPowered    = colorful.MustParseHex("#4CAF50")
	ColorDamaged    = colorful.MustParseHex("#F44336")
	ColorError      = colorful.MustParseHex("#F44336")
	ColorWarning    = colorful.MustParseHex("#FF9800")
	ColorSpinner    = colorful.MustParseHex("#9C27B0")
	ColorBonus      = colorful.MustParseHex("#4CAF50")
	ColorMessage    = colorful.MustParseHex("#FFD700")
	ColorDebug      = colorful.MustParseHex("#00FF00")
	ColorInk        = colorful.MustParseHex("#FFFFFF")
)
