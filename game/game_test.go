package game

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/barragelab/barrage/errors"
	"github.com/barragelab/barrage/geom"
	"github.com/barragelab/barrage/stage"
)

// recorder captures renderer calls in order.
type recorder struct {
	ops []string
}

func (r *recorder) Clear(rect geom.Rect) {
	r.ops = append(r.ops, fmt.Sprintf("clear %gx%g", rect.Width, rect.Height))
}

func (r *recorder) SetColor(name string) {
	r.ops = append(r.ops, "color "+name)
}

func (r *recorder) StrokeRect(rect geom.Rect) {
	r.ops = append(r.ops, "rect")
}

func (r *recorder) StrokeLine(a, b geom.Point) {
	r.ops = append(r.ops, "line")
}

func (r *recorder) StrokeCircle(c geom.Point, radius float32) {
	r.ops = append(r.ops, fmt.Sprintf("circle r%g", radius))
}

func TestShooterInitializeOnce(t *testing.T) {
	st, err := stage.Default()
	if err != nil {
		t.Fatalf("load stage: %v", err)
	}
	g := New(st, nil)

	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}

	err = g.Initialize(context.Background())
	if err == nil {
		t.Fatal("expected error on second Initialize")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseRun, Kind: errors.KindAlreadyInitialized}) {
		t.Fatalf("expected run/already_initialized, got %v", err)
	}
}

func TestShooterBeforeInitialize(t *testing.T) {
	st, _ := stage.Default()
	g := New(st, nil)

	g.Update(held{}) // must not panic

	rec := &recorder{}
	g.Draw(rec)
	if len(rec.ops) != 1 || rec.ops[0] != "clear 600x600" {
		t.Fatalf("expected only a clear before initialization, got %v", rec.ops)
	}
	if g.Score() != 0 || g.Over() {
		t.Fatal("uninitialized game must report zero score and not be over")
	}
}

func TestShooterDrawOrder(t *testing.T) {
	st, _ := stage.Default()
	g := New(st, nil)
	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}

	rec := &recorder{}
	g.Draw(rec)

	if len(rec.ops) < 4 {
		t.Fatalf("too few draw ops: %v", rec.ops)
	}
	if rec.ops[0] != "clear 600x600" {
		t.Errorf("draw must start by clearing the canvas, got %q", rec.ops[0])
	}
	if rec.ops[1] != "color gray" || rec.ops[2] != "rect" {
		t.Errorf("playfield frame must follow the clear, got %v", rec.ops[1:3])
	}

	// Player, one enemy and four bullets are all stroked.
	var circles int
	for _, op := range rec.ops {
		if op == "circle r20" || op == "circle r10" || op == "circle r3" {
			circles++
		}
	}
	if circles != 6 {
		t.Errorf("expected 6 circles (hitbox, enemy, 4 bullets), got %d in %v", circles, rec.ops)
	}
}

func TestShooterRunToGameOver(t *testing.T) {
	g := New(pointBlankStage(1), nil)
	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}

	g.Update(held{})
	if !g.Over() {
		t.Fatal("expected game over")
	}
	if g.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", g.Lives())
	}
}

func TestShooterScoreAccumulates(t *testing.T) {
	st, _ := stage.Default()
	g := New(st, nil)
	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}

	for i := 0; i < 60; i++ {
		g.Update(held{})
	}
	if g.Score() != 60 {
		t.Fatalf("score = %d, want 60", g.Score())
	}
}
