package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	employeedomain "github.com/Apurer/retail-pos/internal/domains/employees/domain"
	employeeports "github.com/Apurer/retail-pos/internal/domains/employees/ports"
)

const tracerName = "github.com/Apurer/retail-pos/internal/domains/employees/adapters/observability/service"

// Service decorates the employee service with tracing, logging, and metrics.
type Service struct {
	inner     employeeports.Service
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
		s.mutations, _ = m.Int64Counter("employees.service.mutations", metric.WithDescription("Number of employee mutations"))
	}
}

func New(inner employeeports.Service, opts ...Option) employeeports.Service {
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

func (s *Service) Add(ctx context.Context, employee *employeedomain.Employee) (*employeedomain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Add", trace.WithAttributes(attribute.String("employee.name", employee.Name)))
	defer span.End()

	result, err := s.inner.Add(ctx, employee)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add employee", slog.String("employee.name", employee.Name))
	}
	span.SetAttributes(attribute.Int64("employee.id", result.ID))
	s.recordMutation(ctx, "add")
	s.logInfo(ctx, "employee added", slog.Int64("employee.id", result.ID))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*employeedomain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list employees")
	}
	span.SetAttributes(attribute.Int("employee.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*employeedomain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.GetByID", trace.WithAttributes(attribute.Int64("employee.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load employee", slog.Int64("employee.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, employee *employeedomain.Employee) (*employeedomain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Update", trace.WithAttributes(attribute.Int64("employee.id", employee.ID)))
	defer span.End()

	result, err := s.inner.Update(ctx, employee)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update employee", slog.Int64("employee.id", employee.ID))
	}
	s.recordMutation(ctx, "update")
	s.logInfo(ctx, "employee updated", slog.Int64("employee.id", result.ID))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Delete", trace.WithAttributes(attribute.Int64("employee.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete employee", slog.Int64("employee.id", id))
	}
	s.recordMutation(ctx, "delete")
	s.logInfo(ctx, "employee deleted", slog.Int64("employee.id", id))
	return nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*employeedomain.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "EmployeeService.Search", trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search employees", slog.String("search.query", query))
	}
	span.SetAttributes(attribute.Int("employee.count", len(result)))
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

var _ employeeports.Service = (*Service)(nil)
