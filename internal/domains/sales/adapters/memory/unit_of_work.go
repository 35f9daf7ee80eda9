package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	ordermemory "github.com/Apurer/retail-pos/internal/domains/orders/adapters/memory"
	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	productmemory "github.com/Apurer/retail-pos/internal/domains/products/adapters/memory"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	"github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serializes units over the memory repositories and compensates the
// writes of a failed unit: decrements are restocked and new orders deleted.
type UnitOfWork struct {
	mu       sync.Mutex
	products *productmemory.Repository
	orders   *ordermemory.Repository
}

func NewUnitOfWork(products *productmemory.Repository, orders *ordermemory.Repository) *UnitOfWork {
	return &UnitOfWork{products: products, orders: orders}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	j := &journal{products: u.products, orders: u.orders}
	if err := fn(ctx, j); err != nil {
		if rbErr := j.rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return nil
}

type decrement struct {
	id  int64
	qty int32
}

// journal records compensations for the writes made during one unit.
type journal struct {
	products   *productmemory.Repository
	orders     *ordermemory.Repository
	decrements []decrement
	created    []int64
}

func (j *journal) Products() productports.Repository { return journalProducts{j} }
func (j *journal) Orders() orderports.Repository     { return journalOrders{j} }

func (j *journal) rollback(ctx context.Context) error {
	var errs []error
	for i := len(j.created) - 1; i >= 0; i-- {
		if err := j.orders.Delete(ctx, j.created[i]); err != nil && !errors.Is(err, orderports.ErrNotFound) {
			errs = append(errs, err)
		}
	}
	for i := len(j.decrements) - 1; i >= 0; i-- {
		d := j.decrements[i]
		if err := j.products.Restock(ctx, d.id, d.qty); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type journalProducts struct{ j *journal }

func (p journalProducts) Save(context.Context, *productdomain.Product) (*productdomain.Product, error) {
	return nil, errors.New("product writes other than stock decrements are not journaled")
}

func (p journalProducts) GetByID(ctx context.Context, id int64) (*productdomain.Product, error) {
	return p.j.products.GetByID(ctx, id)
}

func (p journalProducts) Delete(context.Context, int64) error {
	return errors.New("product writes other than stock decrements are not journaled")
}

func (p journalProducts) List(ctx context.Context) ([]*productdomain.Product, error) {
	return p.j.products.List(ctx)
}

func (p journalProducts) DecrementStock(ctx context.Context, id int64, qty int32) (*productdomain.Product, error) {
	product, err := p.j.products.DecrementStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	p.j.decrements = append(p.j.decrements, decrement{id: id, qty: qty})
	return product, nil
}

type journalOrders struct{ j *journal }

// Save only accepts new orders so the journal can undo it by deletion.
func (o journalOrders) Save(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	if order != nil && order.ID != 0 {
		return nil, errors.New("only new orders can be saved in a unit of work")
	}
	saved, err := o.j.orders.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	o.j.created = append(o.j.created, saved.ID)
	return saved, nil
}

func (o journalOrders) GetByID(ctx context.Context, id int64) (*orderdomain.Order, error) {
	return o.j.orders.GetByID(ctx, id)
}

func (o journalOrders) Delete(context.Context, int64) error {
	return errors.New("order deletes are not journaled")
}

func (o journalOrders) List(ctx context.Context) ([]*orderdomain.Order, error) {
	return o.j.orders.List(ctx)
}

func (o journalOrders) ListBetween(ctx context.Context, from, to time.Time) ([]*orderdomain.Order, error) {
	return o.j.orders.ListBetween(ctx, from, to)
}

func (o journalOrders) GetByCheckoutKey(ctx context.Context, key string) (*orderdomain.Order, error) {
	return o.j.orders.GetByCheckoutKey(ctx, key)
}
