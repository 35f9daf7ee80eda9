package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

const tracerName = "github.com/Apurer/retail-pos/internal/domains/sales/adapters/observability/service"

// Service decorates the sales service with tracing, logging, and metrics.
type Service struct {
	inner          salesports.Service
	tracer         trace.Tracer
	logger         *slog.Logger
	checkouts      metric.Int64Counter
	checkoutFailed metric.Int64Counter
	itemsAdded     metric.Int64Counter
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
		s.checkouts, _ = m.Int64Counter("sales.service.checkouts", metric.WithDescription("Number of completed checkouts"))
		s.checkoutFailed, _ = m.Int64Counter("sales.service.checkout_failures", metric.WithDescription("Number of rejected or failed checkouts"))
		s.itemsAdded, _ = m.Int64Counter("sales.service.items_added", metric.WithDescription("Units added to carts"))
	}
}

func New(inner salesports.Service, opts ...Option) salesports.Service {
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

func (s *Service) NewCart(ctx context.Context) (*salesdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.NewCart")
	defer span.End()

	cart, err := s.inner.NewCart(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create cart")
	}
	span.SetAttributes(attribute.String("cart.id", cart.ID))
	s.logInfo(ctx, "cart created", slog.String("cart.id", cart.ID))
	return cart, nil
}

func (s *Service) GetCart(ctx context.Context, cartID string) (*salesdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.GetCart", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	cart, err := s.inner.GetCart(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("cart.id", cartID))
	}
	return cart, nil
}

func (s *Service) AddToCart(ctx context.Context, cartID string, productID int64, quantity int32) (*salesdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.AddToCart", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.Int64("product.id", productID),
		attribute.Int("quantity", int(quantity)),
	))
	defer span.End()

	cart, err := s.inner.AddToCart(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add to cart", slog.String("cart.id", cartID), slog.Int64("product.id", productID))
	}
	if s.itemsAdded != nil {
		added := int64(quantity)
		if added <= 0 {
			added = 1
		}
		s.itemsAdded.Add(ctx, added)
	}
	span.SetAttributes(attribute.Int64("cart.version", cart.Version))
	return cart, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, cartID string, productID int64) (*salesdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.RemoveFromCart", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.Int64("product.id", productID),
	))
	defer span.End()

	cart, err := s.inner.RemoveFromCart(ctx, cartID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove from cart", slog.String("cart.id", cartID), slog.Int64("product.id", productID))
	}
	return cart, nil
}

func (s *Service) ClearCart(ctx context.Context, cartID string) (*salesdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ClearCart", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	cart, err := s.inner.ClearCart(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("cart.id", cartID))
	}
	return cart, nil
}

func (s *Service) Checkout(ctx context.Context, cartID, customerName string) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.Checkout", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	order, err := s.inner.Checkout(ctx, cartID, customerName)
	if err != nil {
		if s.checkoutFailed != nil {
			s.checkoutFailed.Add(ctx, 1)
		}
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("cart.id", cartID))
	}
	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.String("order.total", order.Total.StringFixed(2)),
	)
	if s.checkouts != nil {
		s.checkouts.Add(ctx, 1)
	}
	s.logInfo(ctx, "checkout completed",
		slog.String("cart.id", cartID),
		slog.Int64("order.id", order.ID),
		slog.String("order.total", order.Total.StringFixed(2)),
	)
	return order, nil
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

var _ salesports.Service = (*Service)(nil)
