// Package config loads service configuration from ROYALSPELLS_* environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix is shared by every environment variable the binaries read.
const Prefix = "ROYALSPELLS_"

// Validator is implemented by config structs that check their own values
// after parsing.
type Validator interface {
	Validate() error
}

// ParseEnv loads configuration from environment variables. Tags name the full
// variable, prefix included. When target implements Validator it is validated
// after parsing.
func ParseEnv(target any) error {
	return parse(target, env.Options{})
}

// ParseEnvMap is ParseEnv against an explicit environment instead of the
// process one.
func ParseEnvMap(target any, environment map[string]string) error {
	return parse(target, env.Options{Environment: environment})
}

func parse(target any, opts env.Options) error {
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if v, ok := target.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate env: %w", err)
		}
	}
	return nil
}
