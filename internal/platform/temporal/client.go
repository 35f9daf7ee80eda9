// Package temporal dials the Temporal frontend with tracing and slog-backed logging.
package temporal

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/Apurer/retail-pos/internal/config"
)

// Dial connects to Temporal. The caller owns the returned client and must Close it.
func Dial(cfg config.Temporal, tracer trace.Tracer, logger *slog.Logger) (client.Client, error) {
	options, err := ClientOptions(cfg, tracer, logger)
	if err != nil {
		return nil, err
	}
	c, err := client.Dial(options)
	if err != nil {
		return nil, fmt.Errorf("dial temporal %s: %w", options.HostPort, err)
	}
	return c, nil
}

// ClientOptions builds the options Dial uses; split out so they can be inspected without a server.
func ClientOptions(cfg config.Temporal, tracer trace.Tracer, logger *slog.Logger) (client.Options, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return client.Options{}, fmt.Errorf("temporal tracing interceptor: %w", err)
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	if options.HostPort == "" {
		options.HostPort = client.DefaultHostPort
	}
	if options.Namespace == "" {
		options.Namespace = client.DefaultNamespace
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}
