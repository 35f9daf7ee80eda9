package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	supplierdomain "github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
	supplierports "github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
)

const tracerName = "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/observability/service"

// Service decorates the supplier service with tracing, logging, and metrics.
type Service struct {
	inner     supplierports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	mutations metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.mutations, _ = m.Int64Counter("suppliers.service.mutations", metric.WithDescription("Number of supplier mutations"))
	}
}

func New(inner supplierports.Service, opts ...Option) supplierports.Service {
	s := &Service{inner: inner}
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

func (s *Service) Add(ctx context.Context, supplier *supplierdomain.Supplier) (*supplierdomain.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Add", trace.WithAttributes(attribute.String("supplier.name", supplier.Name)))
	defer span.End()

	result, err := s.inner.Add(ctx, supplier)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add supplier", slog.String("supplier.name", supplier.Name))
	}
	span.SetAttributes(attribute.Int64("supplier.id", result.ID))
	s.recordMutation(ctx, "add")
	s.logInfo(ctx, "supplier added", slog.Int64("supplier.id", result.ID))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*supplierdomain.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list suppliers")
	}
	span.SetAttributes(attribute.Int("supplier.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*supplierdomain.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.GetByID", trace.WithAttributes(attribute.Int64("supplier.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load supplier", slog.Int64("supplier.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, supplier *supplierdomain.Supplier) (*supplierdomain.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Update", trace.WithAttributes(attribute.Int64("supplier.id", supplier.ID)))
	defer span.End()

	result, err := s.inner.Update(ctx, supplier)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update supplier", slog.Int64("supplier.id", supplier.ID))
	}
	s.recordMutation(ctx, "update")
	s.logInfo(ctx, "supplier updated", slog.Int64("supplier.id", result.ID))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Delete", trace.WithAttributes(attribute.Int64("supplier.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete supplier", slog.Int64("supplier.id", id))
	}
	s.recordMutation(ctx, "delete")
	s.logInfo(ctx, "supplier deleted", slog.Int64("supplier.id", id))
	return nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*supplierdomain.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Search", trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search suppliers", slog.String("search.query", query))
	}
	span.SetAttributes(attribute.Int("supplier.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func (s *Service) recordMutation(ctx context.Context, op string) {
	if s.mutations != nil {
		s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ supplierports.Service = (*Service)(nil)
