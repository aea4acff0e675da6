// Package draw renders the page and the game onto terminals: a colored
// half-block canvas with a 2D drawing surface, plus ANSI terminal helpers.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// BlockUpperHalf paints the top pixel of a cell in the foreground color and
// the bottom one in the background color.
const BlockUpperHalf = '▀'

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
