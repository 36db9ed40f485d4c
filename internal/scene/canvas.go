// Package scene draws the holodeck: a projected 3D visualization of the
// active science module over a starfield, rendered to terminal cells.
package scene

import (
	"math"
	"strings"
)

// Canvas is a depth-buffered grid of runes.
type Canvas struct {
	w, h  int
	cells []rune
	depth []float64
}

// NewCanvas returns a blank canvas of w×h cells.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		w:     w,
		h:     h,
		cells: make([]rune, w*h),
		depth: make([]float64, w*h),
	}
	for i := range c.cells {
		c.cells[i] = ' '
		c.depth[i] = math.Inf(1)
	}
	return c
}

// Width returns the column count.
func (c *Canvas) Width() int { return c.w }

// Height returns the row count.
func (c *Canvas) Height() int { return c.h }

// Set writes r at (x, y) if it is nearer than what is already there.
func (c *Canvas) Set(x, y int, r rune, z float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	if z > c.depth[i] {
		return
	}
	c.cells[i] = r
	c.depth[i] = z
}

// At returns the rune at (x, y), or a space outside the canvas.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return ' '
	}
	return c.cells[y*c.w+x]
}

// Text writes s starting at (x, y) above everything else, clipped to the
// canvas.
func (c *Canvas) Text(x, y int, s string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, math.Inf(-1))
	}
}

// String renders the canvas as newline-separated rows.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.w + 1) * c.h)
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(c.cells[y*c.w : (y+1)*c.w]))
	}
	return b.String()
}
