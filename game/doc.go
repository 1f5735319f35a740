// Package game implements the shooter: a player dodging enemy bullets
// inside a fixed playfield. Shooter implements barrage.Game; everything
// else is internal simulation state built from a stage definition.
package game
