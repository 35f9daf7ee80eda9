package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/retail-pos/internal/domains/users/adapters/memory"
	"github.com/Apurer/retail-pos/internal/domains/users/domain"
	"github.com/Apurer/retail-pos/internal/domains/users/ports"
)

func init() {
	domain.HashCost = bcrypt.MinCost
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *memory.SessionStore, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	sessions := memory.NewSessionStore()
	svc := NewService(memory.NewRepository(), sessions,
		WithClock(c.Now),
		WithSessionTTL(time.Hour),
	)
	return svc, sessions, c
}

func createUser(t *testing.T, svc *Service, username, password string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, username, password, role)
	require.NoError(t, err)
	created, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "alice", "secret", domain.RoleCashier)

	user, err := svc.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ALICE", "secret")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	user := createUser(t, svc, "bob", "secret", domain.RoleCashier)

	user.Active = false
	_, err := svc.Update(ctx, "bob", user)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "bob", "secret")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
	assert.ErrorIs(t, err, ports.ErrAccountInactive)
	assert.Contains(t, err.Error(), "disabled")

	_, err = svc.Authenticate(ctx, "bob", "wrong")
	assert.NotErrorIs(t, err, ports.ErrAccountInactive)
}

func TestLoginResolveLogout(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "alice", "secret", domain.RoleAdmin)

	session, user, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, c.now.Add(time.Hour), session.ExpiresAt)

	resolved, err := svc.ResolveSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resolved.Role)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, ports.ErrUnauthenticated)

	require.NoError(t, svc.Logout(ctx, "unknown"))
}

func TestResolveSession_Expired(t *testing.T) {
	svc, sessions, c := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "alice", "secret", domain.RoleCashier)

	session, _, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Hour)
	_, err = svc.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, ports.ErrUnauthenticated)

	_, err = sessions.Get(ctx, session.Token)
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestPurgeExpiredSessions(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "alice", "secret", domain.RoleCashier)

	_, _, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	c.now = c.now.Add(30 * time.Minute)
	_, _, err = svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	c.now = c.now.Add(45 * time.Minute)
	purged, err := svc.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &domain.User{Username: "x", Role: domain.RoleCashier})
	assert.ErrorIs(t, err, ErrInvalidInput)

	createUser(t, svc, "alice", "secret", domain.RoleCashier)
	dup, err := domain.NewUser(0, "alice", "other", domain.RoleCashier)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrUsernameTaken)
}

func TestUpdate_KeepsPasswordWhenHashEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "alice", "secret", domain.RoleCashier)

	updated, err := svc.Update(ctx, "alice", &domain.User{FullName: "Alice Doe", Role: domain.RoleAdmin, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", updated.FullName)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = svc.Authenticate(ctx, "alice", "secret")
	assert.NoError(t, err)

	_, err = svc.Update(ctx, "ghost", &domain.User{})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete_RevokesSessionsAndIsAbsentTolerant(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "alice", "secret", domain.RoleCashier)
	session, _, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice"))
	require.NoError(t, svc.Delete(ctx, "alice"))

	_, err = svc.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, ports.ErrUnauthenticated)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	admin, created, err := svc.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)

	again, created, err := svc.EnsureAdmin(ctx, "admin", "different")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)

	_, err = svc.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRunSessionPurger_StopsOnCancel(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSessionPurger(ctx, svc, 5*time.Millisecond, nil)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purger did not stop")
	}
}
