package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PEERVAULT"

// Load reads configuration from the default search paths and environment.
// Missing config files are fine; defaults plus environment variables are a
// complete configuration.
func Load() (*Config, error) {
	return load("")
}

// LoadWithPath reads configuration from an explicit file.
func LoadWithPath(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path must not be empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("peervault")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/peervault")
		v.AddConfigPath("$HOME/.peervault")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "peervault")
	v.SetDefault("service.version", "dev")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.add_source", false)
	v.SetDefault("log.time_format", time.RFC3339)

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.read_timeout", "30s")
	v.SetDefault("api.write_timeout", "60s")
	v.SetDefault("api.shutdown_timeout", "10s")
	v.SetDefault("api.allowed_origins", []string{"*"})

	v.SetDefault("db.path", "./data/peervault.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 300)
}
