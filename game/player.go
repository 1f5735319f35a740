package game

import (
	"github.com/barragelab/barrage"
	"github.com/barragelab/barrage/geom"
)

// Key bindings, browser KeyboardEvent.code convention.
const (
	keyUp    = "KeyW"
	keyLeft  = "KeyA"
	keyDown  = "KeyS"
	keyRight = "KeyD"
	keyBomb  = "KeyJ"
	keySlow  = "KeyK"
)

const (
	playerSpeed  = 6.0
	diagFactor   = 0.71
	slowFactor   = 0.6
	hitboxRadius = 3.0

	aliveAnimFrames = 29
	bombFrames      = 60
	respawnFrames   = 90
)

type playerPhase int

const (
	phaseAlive playerPhase = iota
	phaseBombing
	phaseRespawning
)

type playerEvent int

const (
	eventUpdate playerEvent = iota
	eventBomb
	eventHit
)

// Player is the dodging ship. Its phase machine is alive -> bombing (KeyJ,
// shielded for bombFrames) -> alive, and alive -> respawning (hit, loses a
// life, shielded for respawnFrames) -> alive. Hits while shielded are
// ignored; a hit with one life left ends the run.
type Player struct {
	phase playerPhase
	frame int
	pos   geom.Point
	vel   geom.Vector
	start geom.Point
	field geom.Rect
	lives int
	slow  bool
}

// NewPlayer places the player at start with the given lives, confined to field.
func NewPlayer(start geom.Point, lives int, field geom.Rect) *Player {
	return &Player{
		phase: phaseAlive,
		pos:   start,
		start: start,
		field: field,
		lives: lives,
	}
}

// VelocityFromKeys derives the per-frame velocity from held movement keys.
// Opposing keys cancel, diagonals are damped, and the slow key scales the
// result down for precise dodging.
func VelocityFromKeys(keys barrage.KeySet) geom.Vector {
	var dx, dy float32

	switch {
	case keys.Pressed(keyLeft) == keys.Pressed(keyRight):
		dx = 0
	case keys.Pressed(keyLeft):
		dx = -1
	default:
		dx = 1
	}
	switch {
	case keys.Pressed(keyUp) == keys.Pressed(keyDown):
		dy = 0
	case keys.Pressed(keyUp):
		dy = -1
	default:
		dy = 1
	}

	speed := float32(playerSpeed)
	if dx != 0 && dy != 0 {
		speed *= diagFactor
	}
	if keys.Pressed(keySlow) {
		speed *= slowFactor
	}
	return geom.Vector{X: dx * speed, Y: dy * speed}
}

// SetVelocity sets the velocity applied by the next update.
func (p *Player) SetVelocity(v geom.Vector) {
	p.vel = v
}

// Update advances the player one frame.
func (p *Player) Update() {
	p.transition(eventUpdate)
}

// Bomb triggers the bomb shield. Ignored unless the player is plain alive.
func (p *Player) Bomb() {
	p.transition(eventBomb)
}

// Hit registers a bullet collision. Shielded phases ignore it; otherwise
// the player loses a life and respawns shielded at the start position.
func (p *Player) Hit() {
	p.transition(eventHit)
}

func (p *Player) transition(ev playerEvent) {
	switch {
	case ev == eventUpdate:
		p.integrate()
		switch p.phase {
		case phaseAlive:
			p.advanceFrame(aliveAnimFrames)
		case phaseBombing:
			p.frame++
			if p.frame >= bombFrames {
				p.phase = phaseAlive
				p.frame = 0
			}
		case phaseRespawning:
			p.frame++
			if p.frame >= respawnFrames {
				p.phase = phaseAlive
				p.frame = 0
			}
		}

	case ev == eventBomb && p.phase == phaseAlive:
		p.phase = phaseBombing
		p.frame = 0

	case ev == eventHit && p.phase == phaseAlive:
		p.lives--
		p.pos = p.start
		p.vel = geom.Vector{}
		if p.lives > 0 {
			p.phase = phaseRespawning
			p.frame = 0
		}
	}
}

func (p *Player) integrate() {
	p.pos = p.pos.Add(p.vel)

	if p.pos.X < p.field.X {
		p.pos.X = p.field.X
	}
	if p.pos.X > p.field.X+p.field.Width {
		p.pos.X = p.field.X + p.field.Width
	}
	if p.pos.Y < p.field.Y {
		p.pos.Y = p.field.Y
	}
	if p.pos.Y > p.field.Y+p.field.Height {
		p.pos.Y = p.field.Y + p.field.Height
	}
}

func (p *Player) advanceFrame(wrap int) {
	if p.frame < wrap {
		p.frame++
	} else {
		p.frame = 0
	}
}

// Shielded reports whether hits are currently ignored.
func (p *Player) Shielded() bool {
	return p.phase == phaseBombing || p.phase == phaseRespawning
}

// Dead reports whether the player is out of lives.
func (p *Player) Dead() bool {
	return p.lives <= 0
}

// Lives returns the remaining lives.
func (p *Player) Lives() int {
	return p.lives
}

// Pos returns the player's position.
func (p *Player) Pos() geom.Point {
	return p.pos
}

// Collides reports whether a bullet of the given radius at pos overlaps the
// player's hitbox.
func (p *Player) Collides(pos geom.Point, radius float32) bool {
	r := radius + hitboxRadius
	return p.pos.DistSq(pos) < r*r
}

// Draw renders the ship: blue while shielded, red otherwise; a body rect
// animated by the frame counter, the hitbox circle, and a crosshair through
// the hitbox while slow movement is held.
func (p *Player) Draw(r barrage.Renderer) {
	if p.Shielded() {
		r.SetColor("blue")
	} else {
		r.SetColor("red")
	}

	r.StrokeRect(geom.Rect{
		X:      p.pos.X - 10,
		Y:      p.pos.Y + 10,
		Width:  20,
		Height: -20 - float32(p.frame),
	})
	r.StrokeCircle(p.pos, hitboxRadius)

	if p.slow {
		r.StrokeLine(geom.Point{X: p.pos.X - 8, Y: p.pos.Y}, geom.Point{X: p.pos.X + 8, Y: p.pos.Y})
		r.StrokeLine(geom.Point{X: p.pos.X, Y: p.pos.Y - 8}, geom.Point{X: p.pos.X, Y: p.pos.Y + 8})
	}
}
