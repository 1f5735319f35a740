package pattern

import "github.com/barragelab/barrage/geom"

// Spawn is a single bullet emitted by a pattern.
type Spawn struct {
	Pos geom.Point
	Vel geom.Vector
}

// Source yields the bullets to spawn at a given frame of an enemy's life.
type Source interface {
	Emit(frame int) ([]Spawn, error)
}

// ScriptEntry schedules one spawn at a frame.
type ScriptEntry struct {
	At    int
	Spawn Spawn
}

// Script is a Source backed by a fixed frame-indexed spawn table.
type Script struct {
	spawns map[int][]Spawn
}

// NewScript builds a script from entries. Entries may share frames.
func NewScript(entries []ScriptEntry) *Script {
	s := &Script{spawns: make(map[int][]Spawn, len(entries))}
	for _, e := range entries {
		s.spawns[e.At] = append(s.spawns[e.At], e.Spawn)
	}
	return s
}

// Emit returns the spawns scheduled for frame.
func (s *Script) Emit(frame int) ([]Spawn, error) {
	return s.spawns[frame], nil
}
