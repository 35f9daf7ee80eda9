package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/retail-pos/internal/domains/users/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session/token persistence.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUsername(ctx context.Context, username string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
