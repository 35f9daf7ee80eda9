package config

type Otel struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure    bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	// SampleRatio is the fraction of root traces kept; child spans follow their parent.
	SampleRatio    float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`
	ServiceVersion string  `env:"SERVICE_VERSION" envDefault:"dev"`
}
