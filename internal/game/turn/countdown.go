package turn

import (
	"sync"
	"time"
)

// Countdown drives the session timer on a fixed cadence, independent of turn
// processing.
type Countdown struct {
	interval time.Duration
	onTick   func()
}

// NewCountdown creates a stopped Countdown.
//
// Precondition: interval > 0; onTick must not be nil.
func NewCountdown(interval time.Duration, onTick func()) *Countdown {
	if interval <= 0 {
		panic("turn.NewCountdown: interval must be > 0")
	}
	if onTick == nil {
		panic("turn.NewCountdown: onTick must not be nil")
	}
	return &Countdown{interval: interval, onTick: onTick}
}

// Start launches the ticker goroutine and returns a stop function.
// Calling stop() is idempotent.
//
// Postcondition: onTick is called once per interval until stop() is called.
func (c *Countdown) Start() (stop func()) {
	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.onTick()
			case <-done:
				return
			}
		}
	}()
	return func() {
		once.Do(func() { close(done) })
	}
}
