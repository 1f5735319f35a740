package engine

import "go.uber.org/zap"

// KeyEvent is a single key transition delivered by a host.
type KeyEvent struct {
	Code string
	Down bool
}

const defaultQueueSize = 256

// Input is the boundary between host event handlers and the simulation.
// Push may be called from any goroutine; Drain is called by the loop at the
// start of every Step. When the queue is full, events are dropped rather
// than blocking the host's event dispatch.
type Input struct {
	events chan KeyEvent
}

// NewInput creates a queue holding up to size events. size <= 0 selects
// the default capacity.
func NewInput(size int) *Input {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Input{events: make(chan KeyEvent, size)}
}

// Push enqueues a key transition without blocking.
func (in *Input) Push(ev KeyEvent) {
	select {
	case in.events <- ev:
	default:
		Logger().Debug("input queue full, dropping key event",
			zap.String("code", ev.Code), zap.Bool("down", ev.Down))
	}
}

// Drain applies all queued transitions to keys in arrival order.
func (in *Input) Drain(keys *KeyState) {
	for {
		select {
		case ev := <-in.events:
			if ev.Down {
				keys.press(ev.Code)
			} else {
				keys.release(ev.Code)
			}
		default:
			return
		}
	}
}
