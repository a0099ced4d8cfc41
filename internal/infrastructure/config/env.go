package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SQUARERUN_"

// ParseEnv overrides target fields from SQUARERUN_* environment variables.
// Unset variables leave the field as is.
func ParseEnv(target *GameConfig) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
