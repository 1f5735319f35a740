package barrage

import (
	"context"

	"github.com/barragelab/barrage/geom"
)

// KeySet exposes the set of currently pressed key codes.
// Codes follow the browser KeyboardEvent.code convention ("KeyW", "KeyJ").
type KeySet interface {
	Pressed(code string) bool
}

// Renderer issues stroked drawing commands against a host surface.
// Colors are CSS color names. All primitives stroke with line width 2.
type Renderer interface {
	Clear(r geom.Rect)
	SetColor(name string)
	StrokeRect(r geom.Rect)
	StrokeLine(a, b geom.Point)
	StrokeCircle(center geom.Point, radius float32)
}

// Game is a simulation driven by an engine.Loop. Initialize must be called
// exactly once before the first Update; a second call is an error. Update
// advances one fixed simulation frame, Draw renders the current state.
type Game interface {
	Initialize(ctx context.Context) error
	Update(keys KeySet)
	Draw(r Renderer)
}
