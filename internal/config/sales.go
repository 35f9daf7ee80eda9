package config

import (
	"fmt"
	"time"
)

type Sales struct {
	RequireCustomerName bool   `env:"SALES_REQUIRE_CUSTOMER_NAME" envDefault:"false"`
	WalkInLabel         string `env:"SALES_WALK_IN_LABEL" envDefault:"Walk-in Customer"`
	Timezone            string `env:"SALES_TIMEZONE" envDefault:"UTC"`
}

// Location resolves Timezone; an empty value means UTC.
func (s Sales) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load sales timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
