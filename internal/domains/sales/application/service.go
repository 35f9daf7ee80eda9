package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	"github.com/Apurer/retail-pos/internal/domains/sales/domain"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

// Service orchestrates the point-of-sale cart and checkout.
type Service struct {
	carts        ports.CartStore
	products     productports.Repository
	orchestrator ports.WorkflowOrchestrator
	policy       domain.CustomerPolicy
	newID        func() string
	now          func() time.Time
}

type Option func(*Service)

func WithCustomerPolicy(policy domain.CustomerPolicy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(carts ports.CartStore, products productports.Repository, orchestrator ports.WorkflowOrchestrator, opts ...Option) *Service {
	s := &Service{
		carts:        carts,
		products:     products,
		orchestrator: orchestrator,
		policy:       domain.CustomerPolicy{WalkInLabel: "Walk-in Customer"},
		newID:        uuid.NewString,
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) NewCart(ctx context.Context) (*domain.Cart, error) {
	cart := domain.NewCart(s.newID(), s.now())
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, cartID)
}

// AddToCart adds quantity units (one when zero) priced at the product's current price.
func (s *Service) AddToCart(ctx context.Context, cartID string, productID int64, quantity int32) (*domain.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	item := domain.Item{ProductID: product.ID, Name: product.Name, UnitPrice: product.Price, Stock: product.Quantity}
	cart, err := s.carts.Update(ctx, cartID, func(cart *domain.Cart) error {
		return cart.Add(item, quantity, s.now())
	})
	if errors.Is(err, domain.ErrOutOfStock) {
		return nil, &domain.OutOfStockError{ProductID: productID, Cause: err}
	}
	if err != nil {
		return nil, mapError(err)
	}
	return cart, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, cartID string, productID int64) (*domain.Cart, error) {
	return s.carts.Update(ctx, cartID, func(cart *domain.Cart) error {
		return cart.Remove(productID, s.now())
	})
}

func (s *Service) ClearCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.carts.Update(ctx, cartID, func(cart *domain.Cart) error {
		return cart.Clear(s.now())
	})
}

// Checkout records the cart as one order and clears it. On failure the cart keeps its lines.
func (s *Service) Checkout(ctx context.Context, cartID, customerName string) (*orderdomain.Order, error) {
	current, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	customer, err := s.policy.Resolve(customerName)
	if err != nil {
		return nil, err
	}
	locked, err := s.carts.Update(ctx, cartID, func(cart *domain.Cart) error {
		return cart.BeginCheckout()
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orchestrator.Checkout(ctx, ports.NewCheckoutRequest(locked, customer))
	if err != nil {
		_, abortErr := s.carts.Update(context.WithoutCancel(ctx), cartID, func(cart *domain.Cart) error {
			cart.AbortCheckout()
			return nil
		})
		if abortErr != nil {
			return nil, errors.Join(mapError(err), abortErr)
		}
		return nil, mapError(err)
	}

	if _, err := s.carts.Update(context.WithoutCancel(ctx), cartID, func(cart *domain.Cart) error {
		cart.CompleteCheckout(s.now())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("order %d recorded but cart %s not cleared: %w", order.ID, cartID, err)
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
