package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/Apurer/retail-pos/internal/domains/users/ports"
)

// RunSessionPurger removes expired sessions every interval until ctx is cancelled.
func RunSessionPurger(ctx context.Context, svc ports.Service, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := svc.PurgeExpiredSessions(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "session purge failed", slog.String("error", err.Error()))
				continue
			}
			if purged > 0 {
				logger.InfoContext(ctx, "expired sessions purged", slog.Int64("count", purged))
			}
		}
	}
}
