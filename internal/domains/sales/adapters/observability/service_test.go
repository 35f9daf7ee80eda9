package observability

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	orderdomain "github.com/Apurer/retail-pos/internal/domains/orders/domain"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
)

type stubService struct {
	salesports.Service
	checkoutErr error
}

func (s stubService) Checkout(context.Context, string, string) (*orderdomain.Order, error) {
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	return &orderdomain.Order{ID: 9, Total: decimal.RequireFromString("3.5")}, nil
}

func TestService_CheckoutCountsOutcomes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	ok := New(stubService{}, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))
	failing := New(stubService{checkoutErr: salesdomain.ErrEmptyCart}, WithTracer(tp.Tracer("test")), WithMeter(mp.Meter("test")))

	order, err := ok.Checkout(context.Background(), "c1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)

	_, err = failing.Checkout(context.Background(), "c2", "")
	require.ErrorIs(t, err, salesdomain.ErrEmptyCart)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "SalesService.Checkout", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), totals["sales.service.checkouts"])
	assert.Equal(t, int64(1), totals["sales.service.checkout_failures"])
}
