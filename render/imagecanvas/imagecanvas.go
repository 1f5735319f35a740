// Package imagecanvas implements barrage.Renderer on an in-memory RGBA
// image. It backs the dev server's stage preview and makes draw output
// assertable in tests without a browser or a terminal.
package imagecanvas

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/barragelab/barrage/geom"
)

const lineWidth = 2

// Canvas strokes primitives onto an RGBA image, white background.
type Canvas struct {
	img    *image.RGBA
	stroke color.RGBA
}

// New creates a canvas of the given pixel size, cleared to white.
func New(width, height int) *Canvas {
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		stroke: colornames.Black,
	}
	c.Clear(geom.Rect{Width: float32(width), Height: float32(height)})
	return c
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills r with white.
func (c *Canvas) Clear(r geom.Rect) {
	x0, y0, x1, y1 := bounds(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, colornames.White)
		}
	}
}

// SetColor selects the stroke color by its CSS name. Unknown names fall
// back to black.
func (c *Canvas) SetColor(name string) {
	if col, ok := colornames.Map[strings.ToLower(name)]; ok {
		c.stroke = col
		return
	}
	c.stroke = colornames.Black
}

// StrokeRect strokes the rectangle outline. Negative sizes are normalized,
// matching canvas semantics where a negative height extends upward.
func (c *Canvas) StrokeRect(r geom.Rect) {
	x0, y0, x1, y1 := bounds(r)
	for t := 0; t < lineWidth; t++ {
		c.hline(x0, x1-1, y0+t)
		c.hline(x0, x1-1, y1-1-t)
		c.vline(y0, y1-1, x0+t)
		c.vline(y0, y1-1, x1-1-t)
	}
}

// StrokeLine draws a line from a to b.
func (c *Canvas) StrokeLine(a, b geom.Point) {
	x0, y0 := int(a.X), int(a.Y)
	x1, y1 := int(b.X), int(b.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// StrokeCircle draws a circle outline around center.
func (c *Canvas) StrokeCircle(center geom.Point, radius float32) {
	cx, cy := int(center.X), int(center.Y)
	r := int(radius)
	if r < 0 {
		return
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.plot(cx+x, cy+y)
		c.plot(cx+y, cy+x)
		c.plot(cx-y, cy+x)
		c.plot(cx-x, cy+y)
		c.plot(cx-x, cy-y)
		c.plot(cx-y, cy-x)
		c.plot(cx+y, cy-x)
		c.plot(cx+x, cy-y)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// plot stamps a lineWidth square so strokes read at full resolution.
func (c *Canvas) plot(x, y int) {
	for dy := 0; dy < lineWidth; dy++ {
		for dx := 0; dx < lineWidth; dx++ {
			c.set(x+dx, y+dy, c.stroke)
		}
	}
}

func (c *Canvas) hline(x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		c.set(x, y, c.stroke)
	}
}

func (c *Canvas) vline(y0, y1, x int) {
	for y := y0; y <= y1; y++ {
		c.set(x, y, c.stroke)
	}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if image.Pt(x, y).In(c.img.Rect) {
		c.img.SetRGBA(x, y, col)
	}
}

// bounds normalizes r to integer pixel bounds with positive extent.
func bounds(r geom.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = int(r.X), int(r.Y)
	x1, y1 = int(r.X+r.Width), int(r.Y+r.Height)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
