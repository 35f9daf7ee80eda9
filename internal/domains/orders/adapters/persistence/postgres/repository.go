package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-pos/internal/domains/orders/domain"
	"github.com/Apurer/retail-pos/internal/domains/orders/ports"
	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

var _ ports.Repository = (*Repository)(nil)

// uniqueViolation is raised when a checkout key is already taken.
const uniqueViolation = "23505"

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithDB returns a repository bound to db, typically an open transaction.
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table; lines live in a jsonb column.
type orderRecord struct {
	ID           int64           `gorm:"primaryKey;column:id"`
	CustomerName string          `gorm:"column:customer_name"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Status       string          `gorm:"column:status;type:varchar(32)"`
	Lines        []lineRecord    `gorm:"column:lines;type:jsonb;serializer:json"`
	CheckoutKey  *string         `gorm:"column:checkout_key"`
	CreatedAt    time.Time       `gorm:"column:created_at;index"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

type lineRecord struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	query := r.db.WithContext(ctx)
	if record.ID != 0 {
		query = query.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer_name": record.CustomerName,
				"total":         record.Total,
				"status":        record.Status,
				"lines":         gorm.Expr("EXCLUDED.lines"),
				"checkout_key":  record.CheckoutKey,
				"created_at":    record.CreatedAt,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		})
	}
	if err := query.Create(&record).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ports.ErrDuplicateCheckout
		}
		return nil, persistence.Wrap("save order", err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, persistence.Wrap("get order", err)
	}
	return record.toDomain(), nil
}

// GetByCheckoutKey fetches the order committed for a cart checkout.
func (r *Repository) GetByCheckoutKey(ctx context.Context, key string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, ports.ErrNotFound
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "checkout_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, persistence.Wrap("get order by checkout key", err)
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, id)
	if result.Error != nil {
		return persistence.Wrap("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all orders, oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(ctx, "list orders", r.db)
}

func (r *Repository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(ctx, "list orders between", r.db.Where("created_at >= ? AND created_at < ?", from, to))
}

func (r *Repository) find(ctx context.Context, op string, query *gorm.DB) ([]*domain.Order, error) {
	var records []orderRecord
	if err := query.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, persistence.Wrap(op, err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	lines := make([]lineRecord, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, lineRecord{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	record := orderRecord{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Total:        order.Total,
		Status:       string(order.Status),
		Lines:        lines,
		CreatedAt:    order.CreatedAt,
	}
	if order.CheckoutKey != "" {
		key := order.CheckoutKey
		record.CheckoutKey = &key
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	lines := make([]domain.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, domain.Line{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	order := &domain.Order{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		CustomerName: r.CustomerName,
		Total:        r.Total,
		Status:       domain.Status(r.Status),
		Lines:        lines,
	}
	if r.CheckoutKey != nil {
		order.CheckoutKey = *r.CheckoutKey
	}
	return order
}
