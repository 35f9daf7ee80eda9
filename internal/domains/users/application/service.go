package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/retail-pos/internal/domains/users/domain"
	"github.com/Apurer/retail-pos/internal/domains/users/ports"
)

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithTokenGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newToken = gen
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	clone.ID = 0
	if err := clone.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByUsername(ctx, clone.Username); err == nil {
		return nil, ports.ErrUsernameTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, &clone)
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

// Update replaces the stored account. An empty password hash keeps the current password.
func (s *Service) Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error) {
	if updated == nil {
		return nil, errors.New("user is nil")
	}
	existing, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	clone := *updated
	clone.ID = existing.ID
	clone.Username = existing.Username
	if clone.PasswordHash == "" {
		clone.PasswordHash = existing.PasswordHash
	}
	if err := clone.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, &clone)
	if err != nil {
		return nil, err
	}
	if !saved.Active {
		if err := s.sessions.DeleteByUsername(ctx, saved.Username); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// Delete removes the account and its sessions. Deleting an absent user is a no-op.
func (s *Service) Delete(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if err := s.repo.Delete(ctx, username); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return s.sessions.DeleteByUsername(ctx, username)
}

// Authenticate returns the user only when the password matches and the account is active.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ports.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ports.ErrAccountInactive
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	session := domain.Session{
		Token:     s.newToken(),
		Username:  user.Username,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return &session, user, nil
}

// Logout revokes the token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

// ResolveSession maps a bearer token to its active user.
func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrUnauthenticated
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, ports.ErrUnauthenticated
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
			return nil, err
		}
		return nil, ports.ErrUnauthenticated
	}
	user, err := s.repo.GetByUsername(ctx, session.Username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.Active {
		return nil, ports.ErrUnauthenticated
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator when the username is free.
// The bool result reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	existing, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, false, err
	}
	admin, err := domain.NewUser(0, username, password, domain.RoleAdmin)
	if err != nil {
		return nil, false, mapError(err)
	}
	admin.UpdateProfile("Administrator")
	saved, err := s.repo.Save(ctx, admin)
	if err != nil {
		return nil, false, err
	}
	return saved, true, nil
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx, s.now())
}

var _ ports.Service = (*Service)(nil)
