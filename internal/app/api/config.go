package api

import (
	"fmt"

	"github.com/Apurer/retail-pos/internal/config"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Log       config.Log
	Postgres  config.Postgres
	HTTP      config.HTTP
	Otel      config.Otel
	Temporal  config.Temporal
	Kafka     config.Kafka
	Session   config.Session
	Sales     config.Sales
	Bootstrap config.Bootstrap
	Clock     config.Clock
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg, err := config.New[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTP.Port == 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.Bootstrap.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}
	if _, err := c.Sales.Location(); err != nil {
		return err
	}
	return nil
}
