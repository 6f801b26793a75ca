// Package config loads and validates the service configuration from files
// and environment variables.
package config

import (
	"fmt"

	"github.com/peervault/peervault/internal/inventory/api"
	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/pkg/logger"
)

// Config is the root configuration for the inventory service.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Log     logger.Config `mapstructure:"log"`
	API     api.Config    `mapstructure:"api"`
	DB      db.Config     `mapstructure:"db"`
}

// ServiceConfig holds service identity settings.
type ServiceConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Service.Name == "" {
		return fmt.Errorf("service.name must not be empty")
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be between 1 and 65535, got %d", c.API.Port)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	switch c.Log.Format {
	case logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
