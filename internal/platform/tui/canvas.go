package tui

import (
	"math"

	"github.com/vovakirdan/gameland/internal/core"
)

// halfBlock draws the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const halfBlock = '▀'

// Canvas rasterises the logical drawing area onto terminal cells. Each
// cell holds two vertically stacked pixels, so a cols x rows screen has a
// cols x 2*rows pixel grid. Drawing is in logical coordinates and scaled.
type Canvas struct {
	logicalW, logicalH int
	pixelW, pixelH     int
	pixels             []core.RGB
	screen             *core.Screen
}

// NewCanvas creates a canvas for a logical area of logicalW x logicalH,
// shown on a cols x rows cell screen.
func NewCanvas(logicalW, logicalH, cols, rows int) *Canvas {
	c := &Canvas{
		logicalW: max(logicalW, 1),
		logicalH: max(logicalH, 1),
		screen:   core.NewScreen(0, 0),
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell screen size.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	c.pixelW = cols
	c.pixelH = rows * 2
	c.pixels = make([]core.RGB, c.pixelW*c.pixelH)
	c.screen.Resize(cols, rows)
}

// Size returns the cell screen size.
func (c *Canvas) Size() (cols, rows int) {
	return c.screen.Width(), c.screen.Height()
}

// Clear fills the pixel grid with bg.
func (c *Canvas) Clear(bg core.RGB) {
	for i := range c.pixels {
		c.pixels[i] = bg
	}
}

// FillRect fills a logical rectangle. Any pixel the rectangle touches is
// painted, so small entities stay visible on a coarse terminal.
func (c *Canvas) FillRect(r core.Rect, col core.RGB) {
	if r.Empty() || c.pixelW == 0 || c.pixelH == 0 {
		return
	}
	b := r.Scale(float64(c.pixelW)/float64(c.logicalW), float64(c.pixelH)/float64(c.logicalH))
	x0, x1 := pixelSpan(b.X, b.Right(), c.pixelW)
	y0, y1 := pixelSpan(b.Y, b.Bottom(), c.pixelH)
	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.pixelW : (y+1)*c.pixelW]
		for x := x0; x < x1; x++ {
			row[x] = col
		}
	}
}

// Present composes the pixel grid into the cell screen.
func (c *Canvas) Present() {
	for y := 0; y < c.screen.Height(); y++ {
		top := c.pixels[(2*y)*c.pixelW : (2*y+1)*c.pixelW]
		bottom := c.pixels[(2*y+1)*c.pixelW : (2*y+2)*c.pixelW]
		for x := 0; x < c.screen.Width(); x++ {
			if top[x] == bottom[x] {
				c.screen.Set(x, y, core.Cell{Rune: ' ', FG: top[x], BG: top[x]})
				continue
			}
			c.screen.Set(x, y, core.Cell{Rune: halfBlock, FG: top[x], BG: bottom[x]})
		}
	}
}

// Screen returns the last presented frame.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// pixelSpan converts [lo, hi) to pixel indices clipped to [0, limit).
func pixelSpan(lo, hi float64, limit int) (int, int) {
	lo = core.Clamp(math.Floor(lo), 0, float64(limit))
	hi = core.Clamp(math.Ceil(hi), 0, float64(limit))
	return int(lo), int(hi)
}
