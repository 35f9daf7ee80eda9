package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

var _ ports.CartStore = (*CartStore)(nil)

// CartStore keeps carts in process memory. Carts are transient and are not persisted.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]*domain.Cart{}}
}

func (s *CartStore) Create(_ context.Context, cart *domain.Cart) error {
	if cart == nil || cart.ID == "" {
		return errors.New("cart requires an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.carts[cart.ID]; exists {
		return errors.New("cart already exists")
	}
	s.carts[cart.ID] = cart.Clone()
	return nil
}

func (s *CartStore) Get(_ context.Context, id string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	return cart.Clone(), nil
}

func (s *CartStore) Update(_ context.Context, id string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	working := cart.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	s.carts[id] = working
	return working.Clone(), nil
}

func (s *CartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return ports.ErrCartNotFound
	}
	delete(s.carts, id)
	return nil
}
