// Package seed loads a starter catalog from YAML.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	employeedomain "github.com/Apurer/retail-pos/internal/domains/employees/domain"
	employeeports "github.com/Apurer/retail-pos/internal/domains/employees/ports"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	supplierdomain "github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
	supplierports "github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
)

// Catalog is the seed file layout. Money values are strings to keep exact decimals.
type Catalog struct {
	Products  []Product  `yaml:"products"`
	Suppliers []Supplier `yaml:"suppliers"`
	Employees []Employee `yaml:"employees"`
}

type Product struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Price    string `yaml:"price"`
	Quantity int32  `yaml:"quantity"`
	Supplier string `yaml:"supplier"`
}

type Supplier struct {
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Phone      string   `yaml:"phone"`
	Address    string   `yaml:"address"`
	Categories []string `yaml:"categories"`
}

type Employee struct {
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Salary   string `yaml:"salary"`
}

// Load reads and parses a seed file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed YAML: %w", err)
	}
	return &c, nil
}

// Services are the write paths the seed goes through, so every record is validated.
type Services struct {
	Products  productports.Service
	Suppliers supplierports.Service
	Employees employeeports.Service
}

// Result counts inserted and skipped records.
type Result struct {
	Products  int
	Suppliers int
	Employees int
	Skipped   int
}

// Apply inserts catalog entries whose name does not exist yet, so running it twice is harmless.
func Apply(ctx context.Context, c *Catalog, svc Services) (Result, error) {
	var res Result
	if c == nil {
		return res, nil
	}
	if err := applyProducts(ctx, c.Products, svc.Products, &res); err != nil {
		return res, err
	}
	if err := applySuppliers(ctx, c.Suppliers, svc.Suppliers, &res); err != nil {
		return res, err
	}
	if err := applyEmployees(ctx, c.Employees, svc.Employees, &res); err != nil {
		return res, err
	}
	return res, nil
}

func applyProducts(ctx context.Context, items []Product, svc productports.Service, res *Result) error {
	if len(items) == 0 || svc == nil {
		return nil
	}
	existing, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	seen := names(len(existing))
	for _, p := range existing {
		seen.add(p.Name)
	}
	for _, item := range items {
		if seen.has(item.Name) {
			res.Skipped++
			continue
		}
		price, err := parseMoney(item.Price)
		if err != nil {
			return fmt.Errorf("product %q: %w", item.Name, err)
		}
		product, err := productdomain.NewProduct(0, item.Name, item.Category, price, item.Quantity, item.Supplier)
		if err != nil {
			return fmt.Errorf("product %q: %w", item.Name, err)
		}
		if _, err := svc.Add(ctx, product); err != nil {
			return fmt.Errorf("add product %q: %w", item.Name, err)
		}
		seen.add(item.Name)
		res.Products++
	}
	return nil
}

func applySuppliers(ctx context.Context, items []Supplier, svc supplierports.Service, res *Result) error {
	if len(items) == 0 || svc == nil {
		return nil
	}
	existing, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("list suppliers: %w", err)
	}
	seen := names(len(existing))
	for _, s := range existing {
		seen.add(s.Name)
	}
	for _, item := range items {
		if seen.has(item.Name) {
			res.Skipped++
			continue
		}
		supplier, err := supplierdomain.NewSupplier(0, item.Name, item.Phone)
		if err != nil {
			return fmt.Errorf("supplier %q: %w", item.Name, err)
		}
		if err := supplier.UpdateContact(item.Email, item.Address); err != nil {
			return fmt.Errorf("supplier %q: %w", item.Name, err)
		}
		supplier.SetCategories(item.Categories)
		if _, err := svc.Add(ctx, supplier); err != nil {
			return fmt.Errorf("add supplier %q: %w", item.Name, err)
		}
		seen.add(item.Name)
		res.Suppliers++
	}
	return nil
}

func applyEmployees(ctx context.Context, items []Employee, svc employeeports.Service, res *Result) error {
	if len(items) == 0 || svc == nil {
		return nil
	}
	existing, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	seen := names(len(existing))
	for _, e := range existing {
		seen.add(e.Name)
	}
	for _, item := range items {
		if seen.has(item.Name) {
			res.Skipped++
			continue
		}
		salary, err := parseMoney(item.Salary)
		if err != nil {
			return fmt.Errorf("employee %q: %w", item.Name, err)
		}
		employee, err := employeedomain.NewEmployee(0, item.Name, item.Position, salary)
		if err != nil {
			return fmt.Errorf("employee %q: %w", item.Name, err)
		}
		if err := employee.UpdateContact(item.Email, item.Phone); err != nil {
			return fmt.Errorf("employee %q: %w", item.Name, err)
		}
		if _, err := svc.Add(ctx, employee); err != nil {
			return fmt.Errorf("add employee %q: %w", item.Name, err)
		}
		seen.add(item.Name)
		res.Employees++
	}
	return nil
}

func parseMoney(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d, nil
}

type nameSet map[string]struct{}

func names(size int) nameSet {
	return make(nameSet, size)
}

func (s nameSet) add(name string) {
	s[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
}

func (s nameSet) has(name string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
