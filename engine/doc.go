// Package engine drives a barrage.Game at a fixed simulation rate.
//
// Loop converts host wall-clock timestamps into whole simulation frames:
// however irregularly the host schedules Step, the game sees a uniform
// 60 Hz update cadence and exactly one draw per Step. Input collects key
// transitions from host event handlers (which may run on other goroutines)
// and KeyState holds the set of currently pressed keys, consulted by the
// game during updates.
package engine
