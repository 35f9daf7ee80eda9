// Package clock streams wall-clock ticks for the till screen.
package clock

import (
	"context"
	"time"

	"github.com/Apurer/retail-pos/internal/config"
)

const defaultInterval = time.Second

type Ticker struct {
	interval time.Duration
	now      func() time.Time
}

func NewTicker(cfg config.Clock) *Ticker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Ticker{interval: interval, now: time.Now}
}

// Run emits the current time at once and then every interval.
// The channel is closed when ctx is done; a slow reader skips ticks rather than queueing them.
func (t *Ticker) Run(ctx context.Context) <-chan time.Time {
	ticks := make(chan time.Time, 1)
	go func() {
		defer close(ticks)
		send := func() {
			select {
			case ticks <- t.now():
			default:
			}
		}
		send()
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(t.interval):
				send()
			}
		}
	}()
	return ticks
}
