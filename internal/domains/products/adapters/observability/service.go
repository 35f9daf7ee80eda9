package observability

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
)

const tracerName = "github.com/Apurer/retail-pos/internal/domains/products/adapters/observability/service"

// Service decorates the product service with tracing, logging, and metrics.
type Service struct {
	inner   productports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core product service.
func New(inner productports.Service, opts ...Option) productports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Add(ctx context.Context, product *productdomain.Product) (*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Add", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	s.logInfo(ctx, "adding product", slog.String("product.name", product.Name))
	result, err := s.inner.Add(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product", slog.String("product.name", product.Name))
	}
	span.SetAttributes(attribute.Int64("product.id", result.ID))
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "product added", slog.Int64("product.id", result.ID))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, product *productdomain.Product) (*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Update", trace.WithAttributes(attribute.Int64("product.id", product.ID)))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.Int64("product.id", product.ID))
	result, err := s.inner.Update(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", product.ID))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "product updated", slog.Int64("product.id", result.ID), slog.Int("product.quantity", int(result.Quantity)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	return nil
}

func (s *Service) ListLowStock(ctx context.Context) ([]*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListLowStock")
	defer span.End()

	result, err := s.inner.ListLowStock(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list low stock products")
	}
	span.SetAttributes(attribute.Int("product.low_stock.count", len(result)))
	return result, nil
}

func (s *Service) ListOutOfStock(ctx context.Context) ([]*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListOutOfStock")
	defer span.End()

	result, err := s.inner.ListOutOfStock(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list out of stock products")
	}
	span.SetAttributes(attribute.Int("product.out_of_stock.count", len(result)))
	return result, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*productdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Search", trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("search.query", query))
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) Inventory(ctx context.Context, filter productdomain.InventoryFilter) (*productdomain.Inventory, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Inventory", trace.WithAttributes(attribute.String("inventory.filter", string(filter))))
	defer span.End()

	s.logInfo(ctx, "calculating inventory", slog.String("inventory.filter", string(filter)))
	result, err := s.inner.Inventory(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to calculate inventory")
	}
	span.SetAttributes(
		attribute.Int("inventory.low_stock", result.LowStock),
		attribute.Int("inventory.out_of_stock", result.OutOfStock),
		attribute.String("inventory.value", result.TotalValue.StringFixed(2)),
	)
	return result, nil
}

func (s *Service) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.InventoryValue")
	defer span.End()

	result, err := s.inner.InventoryValue(ctx)
	if err != nil {
		return decimal.Zero, s.handleError(ctx, span, err, "failed to calculate inventory value")
	}
	span.SetAttributes(attribute.String("inventory.value", result.StringFixed(2)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("products.service.mutations", metric.WithDescription("Number of product catalog mutations"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ productports.Service = (*Service)(nil)
