package config

import "time"

// Bootstrap controls the first-run admin account and optional catalog seed.
type Bootstrap struct {
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	SeedFile      string `env:"SEED_FILE"`
}

type Clock struct {
	Interval time.Duration `env:"CLOCK_INTERVAL" envDefault:"1s"`
}
