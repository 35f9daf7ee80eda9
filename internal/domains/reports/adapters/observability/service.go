package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	reportdomain "github.com/Apurer/retail-pos/internal/domains/reports/domain"
	reportports "github.com/Apurer/retail-pos/internal/domains/reports/ports"
)

const tracerName = "github.com/Apurer/retail-pos/internal/domains/reports/adapters/observability/service"

// Service decorates the report service with tracing and error logging.
type Service struct {
	inner  reportports.Service
	tracer trace.Tracer
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func New(inner reportports.Service, opts ...Option) reportports.Service {
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

func (s *Service) Dashboard(ctx context.Context) (*reportdomain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.Dashboard")
	defer span.End()

	d, err := s.inner.Dashboard(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build dashboard")
	}
	span.SetAttributes(
		attribute.Int("dashboard.today_orders", d.TodayOrders),
		attribute.Int("dashboard.low_stock", d.LowStockCount),
	)
	return d, nil
}

func (s *Service) Sales(ctx context.Context, filter reportdomain.SalesFilter) (*reportdomain.SalesReport, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.Sales", trace.WithAttributes(attribute.String("report.filter", string(filter))))
	defer span.End()

	r, err := s.inner.Sales(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build sales report", slog.String("report.filter", string(filter)))
	}
	span.SetAttributes(attribute.Int("order.count", len(r.Orders)))
	return r, nil
}

func (s *Service) Inventory(ctx context.Context, filter productdomain.InventoryFilter) (*productdomain.Inventory, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.Inventory", trace.WithAttributes(attribute.String("report.filter", string(filter))))
	defer span.End()

	inv, err := s.inner.Inventory(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build inventory report", slog.String("report.filter", string(filter)))
	}
	span.SetAttributes(attribute.Int("product.count", len(inv.Products)))
	return inv, nil
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

var _ reportports.Service = (*Service)(nil)
