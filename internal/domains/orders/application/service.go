package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-pos/internal/domains/orders/domain"
	"github.com/Apurer/retail-pos/internal/domains/orders/ports"
)

// Service orchestrates order history use cases.
type Service struct {
	repo        ports.Repository
	now         func() time.Time
	loc         *time.Location
	walkInLabel string
}

type Option func(*Service)

// WithClock overrides the time source used for timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWalkInLabel sets the customer name recorded when none is given.
func WithWalkInLabel(label string) Option {
	return func(s *Service) {
		if label = strings.TrimSpace(label); label != "" {
			s.walkInLabel = label
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, loc: time.UTC, walkInLabel: "Walk-in Customer"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Add(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	clone.ID = 0
	clone.CheckoutKey = ""
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = s.now()
	}
	if err := s.prepare(&clone); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, &clone)
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces an existing order. A zero timestamp keeps the stored one.
func (s *Service) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	existing, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	clone := *order
	clone.CheckoutKey = existing.CheckoutKey
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = existing.CreatedAt
	}
	if err := s.prepare(&clone); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, &clone)
}

// Delete removes an order; deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

// ListToday returns orders created on the current calendar day.
func (s *Service) ListToday(ctx context.Context) ([]*domain.Order, error) {
	from, to := domain.DayBounds(s.now(), s.loc)
	return s.repo.ListBetween(ctx, from, to)
}

func (s *Service) SumTodayTotal(ctx context.Context) (decimal.Decimal, error) {
	orders, err := s.ListToday(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumTotals(orders), nil
}

// prepare closes the order as completed and fills in the walk-in customer.
func (s *Service) prepare(order *domain.Order) error {
	order.Status = domain.StatusCompleted
	order.CustomerName = strings.TrimSpace(order.CustomerName)
	if order.CustomerName == "" {
		order.CustomerName = s.walkInLabel
	}
	if len(order.Lines) > 0 && order.Total.IsZero() {
		order.Total = order.LinesTotal()
	}
	return mapError(order.Validate())
}

var _ ports.Service = (*Service)(nil)
