package config

import "time"

// Postgres configures the pgx pool that backs GORM. An empty DSN selects the in-memory adapters.
type Postgres struct {
	DSN string `env:"POSTGRES_DSN"`

	MaxConns        int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"POSTGRES_MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"POSTGRES_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"POSTGRES_MAX_CONN_IDLE_TIME" envDefault:"30m"`

	// AutoMigrate lets the API apply pending migrations at boot; production runs pos-migrate instead.
	AutoMigrate bool `env:"POSTGRES_AUTO_MIGRATE" envDefault:"false"`
}

// Enabled reports whether a DSN was supplied.
func (p Postgres) Enabled() bool {
	return p.DSN != ""
}
