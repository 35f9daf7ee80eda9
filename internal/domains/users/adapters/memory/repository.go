package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/retail-pos/internal/domains/users/domain"
	"github.com/Apurer/retail-pos/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user store keyed by id with a unique username index.
type Repository struct {
	mu         sync.RWMutex
	users      map[int64]*domain.User
	byUsername map[string]int64
	nextID     int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, byUsername: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byUsername[clone.Username]; ok && owner != clone.ID {
		return nil, ports.ErrUsernameTaken
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if prev, ok := r.users[clone.ID]; ok && prev.Username != clone.Username {
		delete(r.byUsername, prev.Username)
	}
	r.users[clone.ID] = &clone
	r.byUsername[clone.Username] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byUsername[username]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byUsername, username)
	delete(r.users, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
