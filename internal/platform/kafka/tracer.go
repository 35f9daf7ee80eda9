package kafka

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer  = otel.Tracer("internal/platform/kafka")
	kTracer = kotel.NewTracer()
)
