package posserver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/retail-pos/internal/platform/clock"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// POSAPI serves the till helpers: the live clock and the health probe.
type POSAPI struct {
	ticker *clock.Ticker
	checks map[string]HealthCheck
}

func NewPOSAPI(ticker *clock.Ticker, checks map[string]HealthCheck) POSAPI {
	return POSAPI{ticker: ticker, checks: checks}
}

type clockTick struct {
	Time  time.Time `json:"time"`
	Clock string    `json:"clock"`
	Date  string    `json:"date"`
}

// Get /api/v1/pos/clock
// Server-sent events, one "tick" per clock interval until the client disconnects
func (api *POSAPI) StreamClock(c *gin.Context) {
	if api.ticker == nil {
		respondProblem(c, apierrors.ErrUnavailable.WithDetail("clock is not configured"))
		return
	}
	ticks := api.ticker.Run(c.Request.Context())
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		now, ok := <-ticks
		if !ok {
			return false
		}
		c.SSEvent("tick", clockTick{
			Time:  now,
			Clock: now.Format(time.TimeOnly),
			Date:  now.Format("Monday, 02 January 2006"),
		})
		return true
	})
}

// Get /healthz
func (api *POSAPI) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	report := gin.H{"status": "ok"}
	failed := gin.H{}
	for name, check := range api.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		err := check(ctx)
		cancel()
		if err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		status = http.StatusServiceUnavailable
		report = gin.H{"status": "degraded", "checks": failed}
	}
	c.JSON(status, report)
}
