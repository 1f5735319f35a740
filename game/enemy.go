package game

import (
	"github.com/barragelab/barrage"
	"github.com/barragelab/barrage/geom"
	"github.com/barragelab/barrage/pattern"
)

const enemyRadius = 20.0

// Enemy drifts along its velocity and asks its pattern source for bullets
// to spawn each frame. The source may be nil for inert enemies.
type Enemy struct {
	frame  int
	pos    geom.Point
	vel    geom.Vector
	source pattern.Source
}

// NewEnemy places an enemy with the given pattern source.
func NewEnemy(pos geom.Point, vel geom.Vector, source pattern.Source) *Enemy {
	return &Enemy{pos: pos, vel: vel, source: source}
}

// Update advances the enemy one frame and returns the bullets it spawns.
func (e *Enemy) Update() ([]pattern.Spawn, error) {
	e.frame++
	e.pos = e.pos.Add(e.vel)

	if e.source == nil {
		return nil, nil
	}
	return e.source.Emit(e.frame)
}

// Draw renders the enemy as a pink circle.
func (e *Enemy) Draw(r barrage.Renderer) {
	r.SetColor("pink")
	r.StrokeCircle(e.pos, enemyRadius)
}
