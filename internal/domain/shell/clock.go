package shell

import (
	"context"
	"sync"
	"time"
)

// DefaultClockInterval is how often the taskbar clock is sampled.
const DefaultClockInterval = time.Second

// Clock runs at most one ticker goroutine. Start and Stop are idempotent.
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	tick     func()
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewClock creates a stopped clock calling tick every interval.
func NewClock(interval time.Duration, tick func()) *Clock {
	if interval <= 0 {
		interval = DefaultClockInterval
	}
	return &Clock{interval: interval, tick: tick}
}

// Start launches the ticker. It reports false if one is already running.
func (c *Clock) Start(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.tick()
			}
		}
	}()
	return true
}

// Stop halts the ticker and waits for it to exit. It reports false if no
// ticker was running.
func (c *Clock) Stop() bool {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	<-done
	return true
}

// Running reports whether a ticker has been started and not stopped.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}
