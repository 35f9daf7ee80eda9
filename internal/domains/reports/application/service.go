package application

import (
	"context"
	"fmt"
	"time"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	"github.com/Apurer/retail-pos/internal/domains/reports/domain"
	"github.com/Apurer/retail-pos/internal/domains/reports/ports"
)

// Service composes the product and order services into reports.
type Service struct {
	products productports.Service
	orders   orderports.Service
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(products productports.Service, orders orderports.Service, opts ...Option) *Service {
	s := &Service{products: products, orders: orders, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	today, err := s.orders.ListToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard orders: %w", err)
	}
	inventory, err := s.products.Inventory(ctx, productdomain.InventoryAll)
	if err != nil {
		return nil, fmt.Errorf("dashboard inventory: %w", err)
	}
	dashboard := domain.NewDashboard(s.now(), today, *inventory)
	return &dashboard, nil
}

func (s *Service) Sales(ctx context.Context, filter domain.SalesFilter) (*domain.SalesReport, error) {
	var (
		orders []*orderdomain.Order
		err    error
	)
	switch filter {
	case domain.SalesToday:
		orders, err = s.orders.ListToday(ctx)
	case domain.SalesAll:
		orders, err = s.orders.List(ctx)
	default:
		return nil, mapError(fmt.Errorf("%w: %q", domain.ErrInvalidSalesFilter, filter))
	}
	if err != nil {
		return nil, err
	}
	report := domain.NewSalesReport(filter, orders)
	return &report, nil
}

func (s *Service) Inventory(ctx context.Context, filter productdomain.InventoryFilter) (*productdomain.Inventory, error) {
	inventory, err := s.products.Inventory(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return inventory, nil
}

var _ ports.Service = (*Service)(nil)
