package config

type Temporal struct {
	Address   string `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	Namespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	Disabled  bool   `env:"TEMPORAL_DISABLED" envDefault:"false"`
}
