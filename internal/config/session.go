package config

import "time"

type Session struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	PurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL" envDefault:"15m"`
}
