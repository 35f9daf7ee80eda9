package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
	"github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists suppliers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type supplierRecord struct {
	ID         int64          `gorm:"primaryKey;column:id"`
	Name       string         `gorm:"column:name"`
	Email      string         `gorm:"column:email"`
	Phone      string         `gorm:"column:phone"`
	Address    string         `gorm:"column:address"`
	Categories pq.StringArray `gorm:"column:categories;type:text[]"`
	Active     bool           `gorm:"column:active"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (supplierRecord) TableName() string { return "suppliers" }

func (r *Repository) Save(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(supplier)
	query := r.db.WithContext(ctx)
	if record.ID != 0 {
		query = query.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"email":      record.Email,
				"phone":      record.Phone,
				"address":    record.Address,
				"categories": record.Categories,
				"active":     record.Active,
				"updated_at": gorm.Expr("NOW()"),
			}),
		})
	}
	if err := query.Create(&record).Error; err != nil {
		return nil, persistence.Wrap("save supplier", err)
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record supplierRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, persistence.Wrap("get supplier", err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&supplierRecord{}, id)
	if result.Error != nil {
		return persistence.Wrap("delete supplier", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Supplier, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []supplierRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, persistence.Wrap("list suppliers", err)
	}
	suppliers := make([]*domain.Supplier, 0, len(records))
	for i := range records {
		suppliers = append(suppliers, records[i].toDomain())
	}
	return suppliers, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres supplier repository not configured")
	}
	return nil
}

func toRecord(s *domain.Supplier) supplierRecord {
	categories := pq.StringArray(s.Categories)
	if categories == nil {
		categories = pq.StringArray{}
	}
	return supplierRecord{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		Categories: categories,
		Active:     s.Active,
	}
}

func (r supplierRecord) toDomain() *domain.Supplier {
	return &domain.Supplier{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Categories: []string(r.Categories),
		Active:     r.Active,
	}
}
