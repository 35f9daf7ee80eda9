package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/retail-pos/internal/config"
)

func TestTicker_EmitsImmediatelyAndClosesOnCancel(t *testing.T) {
	ticker := NewTicker(config.Clock{Interval: 5 * time.Millisecond})
	fixed := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	ticker.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	ticks := ticker.Run(ctx)

	select {
	case got := <-ticks:
		assert.Equal(t, fixed, got)
	case <-time.After(time.Second):
		t.Fatal("no initial tick")
	}

	select {
	case _, ok := <-ticks:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("no periodic tick")
	}

	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("ticker channel not closed")
		}
	}
}

func TestNewTicker_DefaultInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewTicker(config.Clock{}).interval)
}
