package game

import (
	"go.uber.org/zap"

	"github.com/barragelab/barrage"
	"github.com/barragelab/barrage/errors"
	"github.com/barragelab/barrage/geom"
	"github.com/barragelab/barrage/pattern"
	"github.com/barragelab/barrage/stage"
)

// Level is the live world built from a stage definition: the playfield,
// the player, the enemies and every bullet currently in flight.
type Level struct {
	field    geom.Rect
	player   *Player
	enemies  []*Enemy
	bullets  []*Bullet
	score    int
	gameOver bool
}

// newLevel instantiates a validated stage. Named enemy patterns are
// resolved against the registry; registry may be nil when no stage enemy
// names one.
func newLevel(st *stage.Stage, patterns *pattern.Registry) (*Level, error) {
	field := st.Field.Rect()
	lvl := &Level{
		field:  field,
		player: NewPlayer(st.Player.Pos.Point(), st.Player.Lives, field),
	}

	for _, def := range st.Enemies {
		var source pattern.Source
		switch {
		case def.Pattern != "":
			if patterns == nil {
				return nil, errors.NotFound(errors.PhasePattern,
					"stage needs pattern "+def.Pattern+" but no registry is loaded")
			}
			var err error
			source, err = patterns.Get(def.Pattern)
			if err != nil {
				return nil, err
			}
		case len(def.Spawns) > 0:
			entries := make([]pattern.ScriptEntry, 0, len(def.Spawns))
			for _, s := range def.Spawns {
				entries = append(entries, pattern.ScriptEntry{
					At:    s.At,
					Spawn: pattern.Spawn{Pos: s.Pos.Point(), Vel: s.Vel.Vector()},
				})
			}
			source = pattern.NewScript(entries)
		}
		lvl.enemies = append(lvl.enemies, NewEnemy(def.Pos.Point(), def.Vel.Vector(), source))
	}

	for _, def := range st.Bullets {
		var acc *geom.Vector
		if def.Acc != nil {
			v := def.Acc.Vector()
			acc = &v
		}
		lvl.bullets = append(lvl.bullets, NewBullet(def.Pos.Point(), def.Vel.Vector(), acc, bulletEvents(def.Events)))
	}

	return lvl, nil
}

func bulletEvents(defs []stage.EventDef) []BulletEvent {
	if len(defs) == 0 {
		return nil
	}
	events := make([]BulletEvent, 0, len(defs))
	for _, d := range defs {
		ev := BulletEvent{At: d.At}
		switch {
		case d.SetVel != nil:
			ev.Action = ActionSetVel
			ev.Vec = d.SetVel.Vector()
		case d.SetAcc != nil:
			ev.Action = ActionSetAcc
			ev.Vec = d.SetAcc.Vector()
		case d.RotateVel != nil:
			ev.Action = ActionRotateVel
			ev.Degrees = *d.RotateVel
		}
		events = append(events, ev)
	}
	return events
}

// Update advances the world one frame.
func (l *Level) Update(keys barrage.KeySet) {
	if l.gameOver {
		return
	}

	l.player.SetVelocity(VelocityFromKeys(keys))
	l.player.slow = keys.Pressed(keySlow)
	l.player.Update()

	if keys.Pressed(keyBomb) {
		l.player.Bomb()
	}

	for _, e := range l.enemies {
		spawns, err := e.Update()
		if err != nil {
			Logger().Warn("pattern emit failed", zap.Error(err))
			continue
		}
		for _, s := range spawns {
			l.bullets = append(l.bullets, NewBullet(s.Pos, s.Vel, nil, nil))
		}
	}

	for _, b := range l.bullets {
		b.Update()
	}

	// Drop bullets that left the field.
	kept := l.bullets[:0]
	for _, b := range l.bullets {
		if b.InField(l.field) {
			kept = append(kept, b)
		}
	}
	l.bullets = kept

	if !l.player.Shielded() {
		for _, b := range l.bullets {
			if l.player.Collides(b.Pos(), bulletRadius) {
				l.player.Hit()
				if l.player.Dead() {
					l.gameOver = true
				}
				break
			}
		}
	}

	if !l.gameOver {
		l.score++
	}
}

// Draw renders the player, enemies and bullets.
func (l *Level) Draw(r barrage.Renderer) {
	l.player.Draw(r)
	for _, e := range l.enemies {
		e.Draw(r)
	}
	for _, b := range l.bullets {
		b.Draw(r)
	}
}

// Score is the number of frames survived.
func (l *Level) Score() int {
	return l.score
}

// GameOver reports whether the player is out of lives.
func (l *Level) GameOver() bool {
	return l.gameOver
}
