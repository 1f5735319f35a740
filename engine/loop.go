package engine

import (
	"go.uber.org/zap"

	"github.com/barragelab/barrage"
)

// FrameMillis is the length of one simulation frame in milliseconds.
const FrameMillis = 1.0 / 60.0 * 1000.0

// Loop is a fixed-timestep frame clock. Hosts call Step with a monotonic
// timestamp in milliseconds (performance.now in the browser); the loop
// accumulates elapsed time and runs one game update per whole frame.
type Loop struct {
	lastFrame   float64
	accumulated float64
}

// NewLoop creates a loop anchored at the given timestamp.
func NewLoop(now float64) *Loop {
	return &Loop{lastFrame: now}
}

// Step drains queued input into keys, runs one update per elapsed frame,
// then draws exactly once. It returns the number of updates executed.
func (l *Loop) Step(now float64, input *Input, keys *KeyState, g barrage.Game, r barrage.Renderer) int {
	if input != nil {
		input.Drain(keys)
	}

	l.accumulated += now - l.lastFrame
	updates := 0
	for l.accumulated > FrameMillis {
		g.Update(keys)
		l.accumulated -= FrameMillis
		updates++
	}
	l.lastFrame = now

	if updates > 60 {
		Logger().Debug("loop catching up", zap.Int("updates", updates))
	}

	g.Draw(r)
	return updates
}
