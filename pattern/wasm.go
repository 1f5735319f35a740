package pattern

import (
	"context"
	"encoding/binary"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/barragelab/barrage/errors"
)

const (
	spawnRecordSize = 16 // f32 x, y, vx, vy

	// maxSpawnsPerEmit bounds a single emit so a misbehaving module cannot
	// make the host copy arbitrary amounts of linear memory per frame.
	maxSpawnsPerEmit = 1024
)

// Registry hosts compiled WebAssembly pattern modules on a shared wazero
// runtime. Patterns are registered by name at load time and looked up when
// a stage references them. Close releases the runtime and every instance.
type Registry struct {
	ctx     context.Context
	runtime wazero.Runtime
	sources map[string]*WASMPattern
}

// NewRegistry creates an empty registry. ctx bounds the lifetime of the
// runtime and of every per-frame call made by the patterns it hosts.
func NewRegistry(ctx context.Context) *Registry {
	return &Registry{
		ctx:     ctx,
		runtime: wazero.NewRuntime(ctx),
		sources: make(map[string]*WASMPattern),
	}
}

// Load compiles and instantiates a pattern module and registers it under
// name. The module must export emit (see the package ABI documentation).
func (r *Registry) Load(ctx context.Context, name string, wasmBytes []byte) (*WASMPattern, error) {
	compiled, err := r.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhasePattern, errors.KindInvalidData, err, "compile pattern "+name)
	}

	mod, err := r.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Wrap(errors.PhasePattern, errors.KindInvalidData, err, "instantiate pattern "+name)
	}

	emit := mod.ExportedFunction("emit")
	if emit == nil {
		_ = mod.Close(ctx)
		return nil, errors.NotFound(errors.PhasePattern, `pattern `+name+` does not export "emit"`)
	}

	p := &WASMPattern{name: name, ctx: r.ctx, mod: mod, emit: emit}
	r.sources[name] = p

	Logger().Info("loaded wasm pattern",
		zap.String("name", name), zap.Int("bytes", len(wasmBytes)))
	return p, nil
}

// Get returns the pattern registered under name.
func (r *Registry) Get(name string) (Source, error) {
	p, ok := r.sources[name]
	if !ok {
		return nil, errors.NotFound(errors.PhasePattern, "pattern "+name)
	}
	return p, nil
}

// Close releases the runtime and all hosted patterns.
func (r *Registry) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// WASMPattern is a Source backed by a compiled module's emit export.
// It is not safe for concurrent use; the simulation goroutine owns it.
type WASMPattern struct {
	name string
	ctx  context.Context
	mod  api.Module
	emit api.Function
}

// Emit calls the module's emit export and copies the returned spawn
// records out of its linear memory.
func (p *WASMPattern) Emit(frame int) ([]Spawn, error) {
	res, err := p.emit.Call(p.ctx, api.EncodeI32(int32(frame)))
	if err != nil {
		return nil, errors.Wrap(errors.PhasePattern, errors.KindInvalidData, err, "emit "+p.name)
	}
	if len(res) != 1 {
		return nil, errors.InvalidData(errors.PhasePattern, []string{p.name},
			"emit returned no result")
	}

	packed := res[0]
	ptr := uint32(packed >> 32)
	count := uint32(packed)
	if count == 0 {
		return nil, nil
	}
	if count > maxSpawnsPerEmit {
		return nil, errors.New(errors.PhasePattern, errors.KindOutOfBounds).
			Path(p.name).
			Detail("emit returned %d spawns (max %d)", count, maxSpawnsPerEmit).
			Build()
	}

	data, ok := p.mod.Memory().Read(ptr, count*spawnRecordSize)
	if !ok {
		return nil, errors.New(errors.PhasePattern, errors.KindOutOfBounds).
			Path(p.name).
			Detail("spawn buffer [%d, %d) outside linear memory", ptr, ptr+count*spawnRecordSize).
			Build()
	}
	return decodeSpawns(data)
}

// decodeSpawns unpacks little-endian f32 quadruples into spawns.
func decodeSpawns(data []byte) ([]Spawn, error) {
	if len(data)%spawnRecordSize != 0 {
		return nil, errors.InvalidData(errors.PhasePattern, nil,
			"spawn buffer is not a whole number of records")
	}

	spawns := make([]Spawn, 0, len(data)/spawnRecordSize)
	for off := 0; off < len(data); off += spawnRecordSize {
		s := Spawn{}
		s.Pos.X = f32At(data, off)
		s.Pos.Y = f32At(data, off+4)
		s.Vel.X = f32At(data, off+8)
		s.Vel.Y = f32At(data, off+12)
		spawns = append(spawns, s)
	}
	return spawns, nil
}

func f32At(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
}
