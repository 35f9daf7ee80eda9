package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/retail-pos/internal/domains/users/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountInactive matches ErrInvalidCredentials but carries its own message.
	ErrAccountInactive = fmt.Errorf("%w: account is disabled, contact an administrator", ErrInvalidCredentials)
	ErrUnauthenticated = errors.New("session is missing or expired")
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error

	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
	EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
