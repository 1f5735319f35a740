package imagecanvas

import (
	"image/color"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/barragelab/barrage/geom"
)

func at(c *Canvas, x, y int) color.RGBA {
	return c.Image().RGBAAt(x, y)
}

func TestNewClearsToWhite(t *testing.T) {
	c := New(32, 32)
	if at(c, 0, 0) != colornames.White || at(c, 31, 31) != colornames.White {
		t.Fatal("expected a white canvas")
	}
}

func TestSetColorKnownAndUnknown(t *testing.T) {
	c := New(8, 8)

	c.SetColor("pink")
	if c.stroke != colornames.Pink {
		t.Errorf("stroke = %v, want pink", c.stroke)
	}

	c.SetColor("definitely-not-a-color")
	if c.stroke != colornames.Black {
		t.Errorf("unknown color must fall back to black, got %v", c.stroke)
	}
}

func TestStrokeRectTouchesEdgesOnly(t *testing.T) {
	c := New(40, 40)
	c.SetColor("red")
	c.StrokeRect(geom.Rect{X: 10, Y: 10, Width: 20, Height: 20})

	if at(c, 10, 10) != colornames.Red {
		t.Error("corner not stroked")
	}
	if at(c, 20, 10) != colornames.Red {
		t.Error("top edge not stroked")
	}
	if at(c, 20, 20) != colornames.White {
		t.Error("interior must stay clear")
	}
}

func TestStrokeRectNegativeHeight(t *testing.T) {
	c := New(40, 40)
	c.SetColor("blue")
	// Anchored at the bottom, extending upward, as the player body does.
	c.StrokeRect(geom.Rect{X: 10, Y: 30, Width: 20, Height: -20})

	if at(c, 10, 10) != colornames.Blue {
		t.Error("normalized top edge not stroked")
	}
	if at(c, 10, 29) != colornames.Blue {
		t.Error("bottom edge not stroked")
	}
}

func TestStrokeLine(t *testing.T) {
	c := New(20, 20)
	c.SetColor("black")
	c.StrokeLine(geom.Point{X: 2, Y: 2}, geom.Point{X: 12, Y: 2})

	for x := 2; x <= 12; x++ {
		if at(c, x, 2) != colornames.Black {
			t.Fatalf("pixel (%d,2) not stroked", x)
		}
	}
	if at(c, 2, 10) != colornames.White {
		t.Error("off-line pixel stroked")
	}
}

func TestStrokeCircle(t *testing.T) {
	c := New(40, 40)
	c.SetColor("gray")
	c.StrokeCircle(geom.Point{X: 20, Y: 20}, 8)

	// Cardinal points of the perimeter.
	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if at(c, p[0], p[1]) != colornames.Gray {
			t.Errorf("perimeter pixel %v not stroked", p)
		}
	}
	if at(c, 20, 20) != colornames.White {
		t.Error("circle center must stay clear")
	}
}

func TestDrawOutsideBoundsIsSafe(t *testing.T) {
	c := New(10, 10)
	c.SetColor("red")
	// Must not panic.
	c.StrokeCircle(geom.Point{X: -50, Y: -50}, 10)
	c.StrokeRect(geom.Rect{X: 100, Y: 100, Width: 50, Height: 50})
	c.StrokeLine(geom.Point{X: -5, Y: -5}, geom.Point{X: 15, Y: 15})
}
