package pattern

import (
	"context"
	"encoding/binary"
	goerrors "errors"
	"math"
	"testing"

	"github.com/barragelab/barrage/errors"
	"github.com/barragelab/barrage/geom"
)

func TestScriptEmit(t *testing.T) {
	s := NewScript([]ScriptEntry{
		{At: 180, Spawn: Spawn{Pos: geom.Point{X: 100, Y: 100}}},
		{At: 180, Spawn: Spawn{Pos: geom.Point{X: 200, Y: 100}}},
		{At: 240, Spawn: Spawn{Pos: geom.Point{X: 300, Y: 50}, Vel: geom.Vector{Y: 4}}},
	})

	if got, _ := s.Emit(1); len(got) != 0 {
		t.Fatalf("expected no spawns at frame 1, got %d", len(got))
	}

	got, err := s.Emit(180)
	if err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 spawns at frame 180, got %d", len(got))
	}

	got, _ = s.Emit(240)
	if len(got) != 1 || got[0].Vel.Y != 4 {
		t.Fatalf("unexpected spawn at frame 240: %+v", got)
	}
}

func putSpawn(buf []byte, x, y, vx, vy float32) {
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(vx))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(vy))
}

func TestDecodeSpawns(t *testing.T) {
	buf := make([]byte, 2*spawnRecordSize)
	putSpawn(buf[0:], 100, 100, 0, 0)
	putSpawn(buf[16:], 300, 50, -4, 4)

	spawns, err := decodeSpawns(buf)
	if err != nil {
		t.Fatalf("decodeSpawns error: %v", err)
	}
	if len(spawns) != 2 {
		t.Fatalf("expected 2 spawns, got %d", len(spawns))
	}
	if spawns[0].Pos.X != 100 || spawns[0].Pos.Y != 100 {
		t.Errorf("spawn 0 pos = %+v", spawns[0].Pos)
	}
	if spawns[1].Vel.X != -4 || spawns[1].Vel.Y != 4 {
		t.Errorf("spawn 1 vel = %+v", spawns[1].Vel)
	}
}

func TestDecodeSpawnsPartialRecord(t *testing.T) {
	_, err := decodeSpawns(make([]byte, spawnRecordSize+1))
	if err == nil {
		t.Fatal("expected error for a partial record")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhasePattern, Kind: errors.KindInvalidData}) {
		t.Fatalf("expected pattern/invalid_data, got %v", err)
	}
}

func TestRegistryRejectsGarbageModule(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(ctx)
	defer reg.Close(ctx)

	_, err := reg.Load(ctx, "broken", []byte("not a wasm module"))
	if err == nil {
		t.Fatal("expected compile failure")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhasePattern, Kind: errors.KindInvalidData}) {
		t.Fatalf("expected pattern/invalid_data, got %v", err)
	}
}

func TestRegistryRequiresEmitExport(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(ctx)
	defer reg.Close(ctx)

	// A bare preamble is a valid module with no exports.
	empty := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	_, err := reg.Load(ctx, "empty", empty)
	if err == nil {
		t.Fatal("expected missing export error")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhasePattern, Kind: errors.KindNotFound}) {
		t.Fatalf("expected pattern/not_found, got %v", err)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(ctx)
	defer reg.Close(ctx)

	if _, err := reg.Get("burst"); err == nil {
		t.Fatal("expected not found for unregistered pattern")
	}
}
