package game

import (
	"github.com/barragelab/barrage"
	"github.com/barragelab/barrage/geom"
)

const bulletRadius = 10.0

// BulletAction is what a scripted bullet event does.
type BulletAction int

const (
	// ActionSetVel replaces the bullet's velocity.
	ActionSetVel BulletAction = iota
	// ActionSetAcc replaces the bullet's acceleration.
	ActionSetAcc
	// ActionRotateVel rotates the velocity by Degrees.
	ActionRotateVel
)

// BulletEvent is one scheduled change in a bullet's motion.
type BulletEvent struct {
	At      int
	Action  BulletAction
	Vec     geom.Vector
	Degrees float32
}

// Bullet is a projectile. Its motion integrates acceleration then velocity
// each frame, and its event script fires when the frame counter reaches
// each event's frame. Events must be ordered by frame.
type Bullet struct {
	frame  int
	pos    geom.Point
	vel    geom.Vector
	acc    geom.Vector
	hasAcc bool
	events []BulletEvent
	next   int
}

// NewBullet creates a bullet. acc may be nil for inertial bullets.
func NewBullet(pos geom.Point, vel geom.Vector, acc *geom.Vector, events []BulletEvent) *Bullet {
	b := &Bullet{pos: pos, vel: vel, events: events}
	if acc != nil {
		b.acc = *acc
		b.hasAcc = true
	}
	return b
}

// Update advances the bullet one frame.
func (b *Bullet) Update() {
	b.frame++

	if b.hasAcc {
		b.vel = b.vel.Add(b.acc)
	}
	b.pos = b.pos.Add(b.vel)

	for b.next < len(b.events) && b.events[b.next].At == b.frame {
		b.apply(b.events[b.next])
		b.next++
	}
}

func (b *Bullet) apply(ev BulletEvent) {
	switch ev.Action {
	case ActionSetVel:
		b.vel = ev.Vec
	case ActionSetAcc:
		b.acc = ev.Vec
		b.hasAcc = true
	case ActionRotateVel:
		b.vel = b.vel.Rotate(ev.Degrees)
	}
}

// Pos returns the bullet's position.
func (b *Bullet) Pos() geom.Point {
	return b.pos
}

// InField reports whether the bullet is still inside the playfield.
func (b *Bullet) InField(field geom.Rect) bool {
	return field.Contains(b.pos)
}

// Draw renders the bullet as a black circle.
func (b *Bullet) Draw(r barrage.Renderer) {
	r.SetColor("black")
	r.StrokeCircle(b.pos, bulletRadius)
}
