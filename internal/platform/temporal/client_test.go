package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/retail-pos/internal/config"
)

func TestClientOptionsDefaults(t *testing.T) {
	options, err := ClientOptions(config.Temporal{}, noop.NewTracerProvider().Tracer("test"), nil)
	require.NoError(t, err)

	assert.Equal(t, client.DefaultHostPort, options.HostPort)
	assert.Equal(t, client.DefaultNamespace, options.Namespace)
	assert.Len(t, options.Interceptors, 1)
	assert.NotNil(t, options.Logger)
}

func TestClientOptionsUsesConfig(t *testing.T) {
	options, err := ClientOptions(config.Temporal{Address: "temporal:7233", Namespace: "pos"}, noop.NewTracerProvider().Tracer("test"), nil)
	require.NoError(t, err)

	assert.Equal(t, "temporal:7233", options.HostPort)
	assert.Equal(t, "pos", options.Namespace)
}
