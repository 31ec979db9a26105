// Package config loads the API server settings from defaults, an optional
// config file and PUBLISHING_* environment variables, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aoideee/publishing-api/internal/validator"
)

// EnvPrefix is prepended to every environment override, e.g.
// PUBLISHING_DB_DSN for db.dsn.
const EnvPrefix = "PUBLISHING"

type Config struct {
	Port    int           `mapstructure:"port"`
	Env     string        `mapstructure:"env"`
	DB      DBConfig      `mapstructure:"db"`
	Limiter LimiterConfig `mapstructure:"limiter"`
	Log     LogConfig     `mapstructure:"log"`
}

type DBConfig struct {
	Driver       string        `mapstructure:"driver"` // postgres | sqlite3
	DSN          string        `mapstructure:"dsn"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxIdleTime  time.Duration `mapstructure:"max_idle_time"`
}

type LimiterConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // text | json
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 4000)
	v.SetDefault("env", "development")

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:publishing.db?_busy_timeout=5000")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 25)
	v.SetDefault("db.max_idle_time", 15*time.Minute)

	v.SetDefault("limiter.enabled", true)
	v.SetDefault("limiter.rps", 2)
	v.SetDefault("limiter.burst", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load builds a Config. file may be empty, in which case only defaults and
// the environment are consulted.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings main cannot start without. It is called by
// Load and again by main after command-line flags are applied.
func (c *Config) Validate() error {
	v := validator.New()

	v.Check(c.Port > 0 && c.Port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.PermittedValue(c.Env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(validator.PermittedValue(c.DB.Driver, "postgres", "sqlite3"), "db.driver", "must be postgres or sqlite3")
	v.Check(validator.NotBlank(c.DB.DSN), "db.dsn", "must be provided")
	v.Check(c.DB.MaxOpenConns >= 0, "db.max_open_conns", "must be zero or greater")
	v.Check(c.DB.MaxIdleConns >= 0, "db.max_idle_conns", "must be zero or greater")

	if c.Limiter.Enabled {
		v.Check(c.Limiter.RPS > 0, "limiter.rps", "must be greater than zero")
		v.Check(c.Limiter.Burst > 0, "limiter.burst", "must be greater than zero")
	}

	v.Check(validator.PermittedValue(c.Log.Level, "debug", "info", "warn", "error"), "log.level", "must be debug, info, warn or error")
	v.Check(validator.PermittedValue(c.Log.Format, "text", "json"), "log.format", "must be text or json")

	if !v.Valid() {
		return fmt.Errorf("invalid configuration: %v", v.Errors)
	}
	return nil
}
