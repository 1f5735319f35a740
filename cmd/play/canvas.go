package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/barragelab/barrage/geom"
)

// cellCanvas rasterizes world coordinates onto a grid of terminal cells.
// Each cell remembers the color name it was last stroked with; Render turns
// the grid into a styled frame. It implements barrage.Renderer.
type cellCanvas struct {
	worldW, worldH float32
	cols, rows     int
	cells          []string
	color          string
}

// cellStyles maps the named colors stages use onto ANSI colors. True black
// disappears on dark terminal backgrounds, so it renders as light gray.
var cellStyles = map[string]lipgloss.Style{
	"black": lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	"gray":  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	"red":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"blue":  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"pink":  lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
}

var defaultCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

func newCellCanvas(worldW, worldH float32, cols, rows int) *cellCanvas {
	return &cellCanvas{
		worldW: worldW,
		worldH: worldH,
		cols:   cols,
		rows:   rows,
		cells:  make([]string, cols*rows),
		color:  "black",
	}
}

// Clear wipes the whole grid. The rect argument is part of the Renderer
// contract; a terminal frame is always redrawn in full.
func (c *cellCanvas) Clear(_ geom.Rect) {
	for i := range c.cells {
		c.cells[i] = ""
	}
}

func (c *cellCanvas) SetColor(name string) {
	c.color = name
}

func (c *cellCanvas) StrokeRect(r geom.Rect) {
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	a := geom.Point{X: x, Y: y}
	b := geom.Point{X: x + w, Y: y}
	d := geom.Point{X: x, Y: y + h}
	e := geom.Point{X: x + w, Y: y + h}
	c.StrokeLine(a, b)
	c.StrokeLine(b, e)
	c.StrokeLine(e, d)
	c.StrokeLine(d, a)
}

func (c *cellCanvas) StrokeLine(a, b geom.Point) {
	x0, y0 := c.cell(a)
	x1, y1 := c.cell(b)

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
		c.set(x0, y0)
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

// StrokeCircle samples the circumference in world space so the circle stays
// round despite the grid's non-square world-units-per-cell ratio.
func (c *cellCanvas) StrokeCircle(center geom.Point, radius float32) {
	const steps = 90
	for i := 0; i < steps; i++ {
		v := geom.Vector{X: radius}.Rotate(float32(i) * 360 / steps)
		c.set(c.cell(center.Add(v)))
	}
}

// cell converts a world position to grid coordinates, without clamping;
// out-of-grid cells are discarded by set.
func (c *cellCanvas) cell(p geom.Point) (int, int) {
	cx := int(p.X / c.worldW * float32(c.cols))
	cy := int(p.Y / c.worldH * float32(c.rows))
	return cx, cy
}

func (c *cellCanvas) set(x, y int) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = c.color
}

// Render builds the frame as one string, row by row.
func (c *cellCanvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.cols; x++ {
			name := c.cells[y*c.cols+x]
			if name == "" {
				b.WriteByte(' ')
				continue
			}
			style, ok := cellStyles[name]
			if !ok {
				style = defaultCellStyle
			}
			b.WriteString(style.Render("█"))
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
