package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-pos/internal/domains/employees/domain"
	"github.com/Apurer/retail-pos/internal/domains/employees/ports"
	"github.com/Apurer/retail-pos/internal/shared/persistence"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists employees in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type employeeRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name"`
	Position  string          `gorm:"column:position"`
	Email     string          `gorm:"column:email"`
	Phone     string          `gorm:"column:phone"`
	Salary    decimal.Decimal `gorm:"column:salary;type:numeric(12,2)"`
	Active    bool            `gorm:"column:active"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (employeeRecord) TableName() string { return "employees" }

func (r *Repository) Save(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, errors.New("employee is nil")
	}
	if err := employee.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(employee)
	query := r.db.WithContext(ctx)
	if record.ID != 0 {
		query = query.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"position":   record.Position,
				"email":      record.Email,
				"phone":      record.Phone,
				"salary":     record.Salary,
				"active":     record.Active,
				"updated_at": gorm.Expr("NOW()"),
			}),
		})
	}
	if err := query.Create(&record).Error; err != nil {
		return nil, persistence.Wrap("save employee", err)
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record employeeRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, persistence.Wrap("get employee", err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&employeeRecord{}, id)
	if result.Error != nil {
		return persistence.Wrap("delete employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Employee, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []employeeRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, persistence.Wrap("list employees", err)
	}
	employees := make([]*domain.Employee, 0, len(records))
	for i := range records {
		employees = append(employees, records[i].toDomain())
	}
	return employees, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres employee repository not configured")
	}
	return nil
}

func toRecord(e *domain.Employee) employeeRecord {
	return employeeRecord{
		ID:       e.ID,
		Name:     e.Name,
		Position: e.Position,
		Email:    e.Email,
		Phone:    e.Phone,
		Salary:   e.Salary,
		Active:   e.Active,
	}
}

func (r employeeRecord) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:       r.ID,
		Name:     r.Name,
		Position: r.Position,
		Email:    r.Email,
		Phone:    r.Phone,
		Salary:   r.Salary,
		Active:   r.Active,
	}
}
