package domain

import "strings"

// CustomerPolicy decides what customer name a checkout records.
type CustomerPolicy struct {
	RequireName bool
	WalkInLabel string
}

// Resolve returns the trimmed name, or the walk-in label when names are optional.
func (p CustomerPolicy) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		return name, nil
	}
	if p.RequireName {
		return "", ErrMissingCustomerName
	}
	return p.WalkInLabel, nil
}
