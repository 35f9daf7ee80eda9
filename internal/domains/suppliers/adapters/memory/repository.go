package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
	"github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory supplier persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	suppliers map[int64]*domain.Supplier
	nextID    int64
}

func NewRepository() *Repository {
	return &Repository{suppliers: map[int64]*domain.Supplier{}}
}

func (r *Repository) Save(_ context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	clone := cloneSupplier(supplier)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.suppliers[clone.ID] = clone
	return cloneSupplier(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	supplier, ok := r.suppliers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneSupplier(supplier), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		list = append(list, cloneSupplier(supplier))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func cloneSupplier(s *domain.Supplier) *domain.Supplier {
	clone := *s
	clone.Categories = append([]string(nil), s.Categories...)
	return &clone
}
