package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/memory"
	"github.com/Apurer/retail-pos/internal/domains/suppliers/application"
	supplierdomain "github.com/Apurer/retail-pos/internal/domains/suppliers/domain"
)

func TestService_ValidationFailureIsTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer

	svc := New(
		application.NewService(memory.NewRepository()),
		WithTracer(tp.Tracer("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)

	_, err := svc.Add(context.Background(), &supplierdomain.Supplier{Name: "Acme"})
	require.ErrorIs(t, err, application.ErrInvalidInput)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "SupplierService.Add", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, logs.String(), `"supplier.name":"Acme"`)
}
