// Package stage defines the declarative YAML description of a playable
// stage: the canvas and playfield geometry, the player start, the initial
// bullets with their event scripts, and the enemies with their spawn tables
// or compiled pattern names. The default stage is embedded in the binary.
package stage

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/barragelab/barrage/errors"
	"github.com/barragelab/barrage/geom"
)

//go:embed opening.yaml
var openingYAML []byte

// Vec is a 2D value in stage files.
type Vec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Point converts to a geom position.
func (v Vec) Point() geom.Point { return geom.Point{X: v.X, Y: v.Y} }

// Vector converts to a geom displacement.
func (v Vec) Vector() geom.Vector { return geom.Vector{X: v.X, Y: v.Y} }

// Size is a width/height pair.
type Size struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// RectDef is a rectangle in stage files.
type RectDef struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Rect converts to a geom rectangle.
func (r RectDef) Rect() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// PlayerDef is the player's starting condition.
type PlayerDef struct {
	Pos   Vec `yaml:"pos"`
	Lives int `yaml:"lives"`
}

// EventDef is one scripted change to a bullet. Exactly one of the action
// fields must be set.
type EventDef struct {
	At        int      `yaml:"at"`
	SetVel    *Vec     `yaml:"set_vel,omitempty"`
	SetAcc    *Vec     `yaml:"set_acc,omitempty"`
	RotateVel *float32 `yaml:"rotate_vel,omitempty"`
}

// BulletDef is an initial bullet.
type BulletDef struct {
	Pos    Vec        `yaml:"pos"`
	Vel    Vec        `yaml:"vel"`
	Acc    *Vec       `yaml:"acc,omitempty"`
	Events []EventDef `yaml:"events,omitempty"`
}

// SpawnDef schedules a bullet spawn in an enemy's script.
type SpawnDef struct {
	At  int `yaml:"at"`
	Pos Vec `yaml:"pos"`
	Vel Vec `yaml:"vel"`
}

// EnemyDef is an enemy placement. Pattern names a compiled WASM pattern;
// Spawns is an inline script. They are mutually exclusive.
type EnemyDef struct {
	Pos     Vec        `yaml:"pos"`
	Vel     Vec        `yaml:"vel"`
	Pattern string     `yaml:"pattern,omitempty"`
	Spawns  []SpawnDef `yaml:"spawns,omitempty"`
}

// Stage is a complete stage definition.
type Stage struct {
	Name    string      `yaml:"name"`
	Canvas  Size        `yaml:"canvas"`
	Field   RectDef     `yaml:"field"`
	Player  PlayerDef   `yaml:"player"`
	Bullets []BulletDef `yaml:"bullets,omitempty"`
	Enemies []EnemyDef  `yaml:"enemies,omitempty"`
}

const (
	defaultCanvasSize = 600
	defaultLives      = 3
)

// Parse decodes, defaults and validates a stage definition.
func Parse(data []byte) (*Stage, error) {
	var st Stage
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "decode stage")
	}

	if st.Canvas.Width == 0 {
		st.Canvas.Width = defaultCanvasSize
	}
	if st.Canvas.Height == 0 {
		st.Canvas.Height = defaultCanvasSize
	}
	if st.Player.Lives == 0 {
		st.Player.Lives = defaultLives
	}

	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &st, nil
}

// Load decodes a stage from r.
func Load(r io.Reader) (*Stage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStage, errors.KindInvalidData, err, "read stage")
	}
	return Parse(data)
}

// LoadFile decodes a stage from a file on disk.
func LoadFile(path string) (*Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read stage file "+path)
	}
	return Parse(data)
}

// Default returns the embedded opening stage.
func Default() (*Stage, error) {
	return Parse(openingYAML)
}

// Validate checks geometric and script consistency.
func (st *Stage) Validate() error {
	if st.Canvas.Width <= 0 || st.Canvas.Height <= 0 {
		return errors.InvalidData(errors.PhaseStage, []string{"canvas"}, "canvas must have positive size")
	}

	field := st.Field.Rect()
	if field.Width <= 0 || field.Height <= 0 {
		return errors.InvalidData(errors.PhaseStage, []string{"field"}, "field must have positive size")
	}
	if field.X < 0 || field.Y < 0 ||
		field.X+field.Width > st.Canvas.Width || field.Y+field.Height > st.Canvas.Height {
		return errors.InvalidData(errors.PhaseStage, []string{"field"}, "field exceeds the canvas")
	}

	if !field.Contains(st.Player.Pos.Point()) {
		return errors.InvalidData(errors.PhaseStage, []string{"player", "pos"}, "player starts outside the field")
	}
	if st.Player.Lives < 1 {
		return errors.InvalidData(errors.PhaseStage, []string{"player", "lives"}, "lives must be at least 1")
	}

	for i, b := range st.Bullets {
		if err := validateEvents(i, b.Events); err != nil {
			return err
		}
	}

	for i, e := range st.Enemies {
		idx := strconv.Itoa(i)
		if e.Pattern != "" && len(e.Spawns) > 0 {
			return errors.InvalidData(errors.PhaseStage, []string{"enemies", idx},
				"pattern and spawns are mutually exclusive")
		}
		for j, s := range e.Spawns {
			if s.At <= 0 {
				return errors.InvalidData(errors.PhaseStage,
					[]string{"enemies", idx, "spawns", strconv.Itoa(j)},
					"spawn frame must be positive")
			}
		}
	}

	return nil
}

func validateEvents(bullet int, events []EventDef) error {
	prev := 0
	for j, ev := range events {
		path := []string{"bullets", strconv.Itoa(bullet), "events", strconv.Itoa(j)}

		actions := 0
		if ev.SetVel != nil {
			actions++
		}
		if ev.SetAcc != nil {
			actions++
		}
		if ev.RotateVel != nil {
			actions++
		}
		if actions != 1 {
			return errors.InvalidData(errors.PhaseStage, path,
				fmt.Sprintf("event must have exactly one action, has %d", actions))
		}

		if ev.At <= prev {
			return errors.InvalidData(errors.PhaseStage, path,
				"event frames must be positive and strictly increasing")
		}
		prev = ev.At
	}
	return nil
}
