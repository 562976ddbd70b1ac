package hardware

import (
	"time"
)

type limiter struct {
	tick  *time.Ticker
	nudge chan bool
}

func newLimiter(hz int) *limiter {
	hz = max(hz, 1)
	return &limiter{
		tick:  time.NewTicker(time.Second / time.Duration(hz)),
		nudge: make(chan bool, 1),
	}
}

// Wait blocks until the next tick of the limiter or until Nudge() is called
func (l *limiter) Wait() {
	select {
	case <-l.tick.C:
	case <-l.nudge:
	}
}

// Nudge causes the current or next call to Wait() to return immediately
func (l *limiter) Nudge() {
	select {
	case l.nudge <- true:
	default:
	}
}

func (l *limiter) Stop() {
	l.tick.Stop()
}
