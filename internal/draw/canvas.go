package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// rgb is a quantized pixel color. Comparing rgb values is how the canvas
// decides which terminal cells changed between frames.
type rgb struct {
	r, g, b uint8
}

func toRGB(c colorful.Color) rgb {
	r, g, b := c.Clamped().RGB255()
	return rgb{r, g, b}
}

func (p rgb) color() colorful.Color {
	return colorful.Color{R: float64(p.r) / 255, G: float64(p.g) / 255, B: float64(p.b) / 255}
}

// termCell is one composed terminal cell.
type termCell struct {
	ch     rune
	fg, bg rgb
}

// textItem is a string placed at a terminal cell after the pixels.
type textItem struct {
	col, row int // 0-based, relative to the canvas
	s        string
	fg       rgb
	alpha    float64
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels and
// implements Surface.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []rgb // Flat slice: [y * termWidth + x]
	background     rgb
	texts          []textItem

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Surface state
	state surfaceState
	stack []surfaceState

	// Composed cells of this frame and of the last frame written out
	cells []termCell
	prev  []termCell

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
}

// Compile-time check that Canvas implements Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game and the page.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		state:         surfaceState{transform: identity, alpha: 1},
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]rgb, subPixelHeight*termWidth)
		c.cells = make([]termCell, termWidth*termHeight)
		c.prev = nil
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prev = nil
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// SetBackground sets the color Clear fills the canvas with.
func (c *Canvas) SetBackground(col colorful.Color) {
	c.background = toRGB(col)
}

// Clear resets all pixels and text and the surface state.
func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = c.background
	}
	c.texts = c.texts[:0]
	c.state = surfaceState{transform: identity, alpha: 1}
	c.stack = c.stack[:0]
}

// ForceRedraw makes the next Render write every cell.
func (c *Canvas) ForceRedraw() {
	c.prev = nil
}

// setPixel paints a pixel at actual terminal coordinates (no scaling),
// blending with the current alpha.
func (c *Canvas) setPixel(x, y int, col rgb) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	idx := y*c.termWidth + x
	if c.state.alpha >= 1 {
		c.pixels[idx] = col
		return
	}
	c.pixels[idx] = toRGB(c.pixels[idx].color().BlendRgb(col.color(), c.state.alpha))
}

// toPixel transforms a logical point and scales it to pixel space.
func (c *Canvas) toPixel(x, y float64) Point {
	tx, ty := c.state.transform.apply(x, y)
	return Point{X: tx * c.scaleX, Y: ty * c.scaleY}
}

// FillRect fills a rectangle under the current transform. Rectangles that
// scale below one pixel still light the pixel under their center.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color) {
	if c.state.alpha <= 0 || w <= 0 || h <= 0 {
		return
	}
	if cap(c.scaledBuf) < 4 {
		c.scaledBuf = make([]Point, 4)
	}
	pts := c.scaledBuf[:4]
	pts[0] = c.toPixel(x, y)
	pts[1] = c.toPixel(x+w, y)
	pts[2] = c.toPixel(x+w, y+h)
	pts[3] = c.toPixel(x, y+h)

	minX, maxX, minY, maxY := pts[0].X, pts[0].X, pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	color := toRGB(col)
	if maxX-minX < 1 || maxY-minY < 1 {
		c.setPixel(int(math.Floor((minX+maxX)/2)), int(math.Floor((minY+maxY)/2)), color)
		return
	}
	c.fillPolygon(pts, color)
}

// StrokeLine draws a one-pixel line under the current transform.
func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, col colorful.Color) {
	if c.state.alpha <= 0 {
		return
	}
	c.drawLine(c.toPixel(x1, y1), c.toPixel(x2, y2), toRGB(col))
}

// FillText places s at the terminal cell containing the transformed point.
// Glyphs are not rotated.
func (c *Canvas) FillText(x, y float64, s string, col colorful.Color, align Align) {
	if s == "" || c.state.alpha <= 0 {
		return
	}
	p := c.toPixel(x, y)
	colIdx := int(math.Floor(p.X))
	row := int(math.Floor(p.Y / 2))

	n := utf8.RuneCountInString(s)
	switch align {
	case AlignCenter:
		colIdx -= n / 2
	case AlignRight:
		colIdx -= n
	}
	c.texts = append(c.texts, textItem{col: colIdx, row: row, s: s, fg: toRGB(col), alpha: c.state.alpha})
}

// SetAlpha sets the opacity of subsequent primitives.
func (c *Canvas) SetAlpha(a float64) {
	c.state.alpha = math.Max(0, math.Min(1, a))
}

// Save pushes the transform and alpha.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved transform and alpha. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin by (dx, dy) logical units.
func (c *Canvas) Translate(dx, dy float64) {
	c.state.transform = c.state.transform.mul(translation(dx, dy))
}

// Rotate rotates subsequent primitives around the current origin.
func (c *Canvas) Rotate(radians float64) {
	c.state.transform = c.state.transform.mul(rotation(radians))
}

// drawLine draws a line in pixel space using Bresenham's algorithm.
func (c *Canvas) drawLine(p1, p2 Point, col rgb) {
	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillPolygon fills a polygon given in pixel space using a scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, col rgb) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		// Reuse intersection buffer
		intersections := c.intersectionBuf[:0]

		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Round(intersections[i]))
			xEnd := int(math.Round(intersections[i+1])) - 1
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// compose folds pixels and text into terminal cells.
func (c *Canvas) compose() {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth
		for col := 0; col < c.termWidth; col++ {
			c.cells[row*c.termWidth+col] = termCell{
				ch: BlockUpperHalf,
				fg: c.pixels[topOffset+col],
				bg: c.pixels[bottomOffset+col],
			}
		}
	}

	for _, t := range c.texts {
		if t.row < 0 || t.row >= c.termHeight {
			continue
		}
		col := t.col
		for _, r := range t.s {
			if col >= 0 && col < c.termWidth {
				cell := &c.cells[t.row*c.termWidth+col]
				// Text sits on the top half's color.
				bg := cell.fg
				fg := t.fg
				if t.alpha < 1 {
					fg = toRGB(bg.color().BlendRgb(t.fg.color(), t.alpha))
				}
				*cell = termCell{ch: r, fg: fg, bg: bg}
			}
			col++
		}
	}
}

// Render writes the cells that changed since the last Render as ANSI
// truecolor output.
func (c *Canvas) Render(w io.Writer) error {
	c.compose()

	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	full := len(c.prev) != len(c.cells)
	var last termCell
	haveStyle := false
	var num [20]byte

	for row := 0; row < c.termHeight; row++ {
		cursorValid := false
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cell := c.cells[i]
			if !full && c.prev[i] == cell {
				cursorValid = false
				continue
			}

			if !cursorValid {
				c.renderBuf.WriteString("\033[")
				c.renderBuf.Write(strconv.AppendInt(num[:0], int64(row+1+c.offsetRow), 10))
				c.renderBuf.WriteByte(';')
				c.renderBuf.Write(strconv.AppendInt(num[:0], int64(col+1+c.offsetCol), 10))
				c.renderBuf.WriteByte('H')
				cursorValid = true
			}
			if !haveStyle || last.fg != cell.fg || last.bg != cell.bg {
				writeStyle(&c.renderBuf, cell.fg, cell.bg, num[:])
				haveStyle = true
			}
			last = cell
			c.renderBuf.WriteRune(cell.ch)
		}
	}
	if haveStyle {
		c.renderBuf.WriteString("\033[0m")
	}

	if len(c.prev) != len(c.cells) {
		c.prev = make([]termCell, len(c.cells))
	}
	copy(c.prev, c.cells)

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func writeStyle(b *strings.Builder, fg, bg rgb, num []byte) {
	b.WriteString("\033[38;2;")
	writeRGB(b, fg, num)
	b.WriteString(";48;2;")
	writeRGB(b, bg, num)
	b.WriteByte('m')
}

func writeRGB(b *strings.Builder, p rgb, num []byte) {
	b.Write(strconv.AppendUint(num[:0], uint64(p.r), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(p.g), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(p.b), 10))
}

// RenderScreen draws the canvas onto a tcell screen. The caller shows the screen.
func (c *Canvas) RenderScreen(s tcell.Screen) {
	c.compose()
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cell := c.cells[row*c.termWidth+col]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(cell.fg.r), int32(cell.fg.g), int32(cell.fg.b))).
				Background(tcell.NewRGBColor(int32(cell.bg.r), int32(cell.bg.g), int32(cell.bg.b)))
			s.SetContent(col+c.offsetCol, row+c.offsetRow, cell.ch, nil, style)
		}
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			buf.WriteString(cursorTo(top, left) + "┌" + strings.Repeat("─", c.termWidth) + "┐")
			buf.WriteString(cursorTo(bottom, left) + "└" + strings.Repeat("─", c.termWidth) + "┘")
		} else {
			buf.WriteString(cursorTo(top, c.offsetCol+1) + strings.Repeat("─", c.termWidth))
			buf.WriteString(cursorTo(bottom, c.offsetCol+1) + strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursorTo(row, left) + "│" + cursorTo(row, right) + "│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func cursorTo(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 1-based terminal position to the logical
// coordinates of that cell's center. ok is false outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cx) + 0.5) / c.scaleX
	y = (float64(cy)*2 + 1) / c.scaleY
	return x, y, true
}
