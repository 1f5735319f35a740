package game

import (
	"context"

	"github.com/barragelab/barrage"
	"github.com/barragelab/barrage/errors"
	"github.com/barragelab/barrage/geom"
	"github.com/barragelab/barrage/pattern"
	"github.com/barragelab/barrage/stage"
)

// Shooter is the game handed to an engine.Loop. It starts unloaded;
// Initialize builds the level from the stage definition and may be called
// exactly once. Updates and draws before initialization are no-ops apart
// from clearing the canvas.
type Shooter struct {
	st       *stage.Stage
	patterns *pattern.Registry
	level    *Level
}

// New prepares a shooter for the given stage. patterns may be nil when the
// stage references no compiled patterns.
func New(st *stage.Stage, patterns *pattern.Registry) *Shooter {
	return &Shooter{st: st, patterns: patterns}
}

// Initialize builds the level. A second call is an error.
func (g *Shooter) Initialize(ctx context.Context) error {
	if g.level != nil {
		return errors.AlreadyInitialized(errors.PhaseRun, "game is already initialized")
	}

	lvl, err := newLevel(g.st, g.patterns)
	if err != nil {
		return err
	}
	g.level = lvl
	return nil
}

// Update advances the simulation one frame.
func (g *Shooter) Update(keys barrage.KeySet) {
	if g.level == nil {
		return
	}
	g.level.Update(keys)
}

// Draw clears the canvas, frames the playfield in gray and renders the level.
func (g *Shooter) Draw(r barrage.Renderer) {
	r.Clear(geom.Rect{Width: g.st.Canvas.Width, Height: g.st.Canvas.Height})

	if g.level == nil {
		return
	}

	r.SetColor("gray")
	r.StrokeRect(g.st.Field.Rect())
	g.level.Draw(r)
}

// Score is the number of frames survived so far.
func (g *Shooter) Score() int {
	if g.level == nil {
		return 0
	}
	return g.level.Score()
}

// Over reports whether the run has ended.
func (g *Shooter) Over() bool {
	return g.level != nil && g.level.GameOver()
}

// Lives returns the player's remaining lives.
func (g *Shooter) Lives() int {
	if g.level == nil {
		return 0
	}
	return g.level.player.Lives()
}
