// Package pattern produces bullet spawns for enemies.
//
// A Source is asked once per simulation frame for the bullets it wants to
// spawn. Two implementations exist: Script replays a frame-indexed table
// from a stage definition, and WASMPattern calls into a compiled
// WebAssembly module hosted on a shared wazero runtime, so bullet
// choreography can be authored and compiled separately from the engine.
//
// # WASM Pattern ABI
//
// A pattern module exports:
//
//	emit(frame: i32) -> i64
//
// The result packs a linear-memory pointer in the high 32 bits and a spawn
// count in the low 32 bits. Each spawn record is 16 bytes of little-endian
// f32: x, y, vx, vy. The buffer only needs to stay valid until emit returns;
// the host copies it out immediately.
package pattern
