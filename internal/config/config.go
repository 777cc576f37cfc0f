// Package config loads gocache settings from defaults, an optional config
// file, GOCACHE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. GOCACHE_CAPACITY.
const EnvPrefix = "GOCACHE"

// Config is the full set of tunables used by the gocache commands.
type Config struct {
	Capacity       int           `mapstructure:"capacity"`
	Shards         int           `mapstructure:"shards"`
	Workers        int           `mapstructure:"workers"`
	Ops            int           `mapstructure:"ops"`
	Keyspace       int           `mapstructure:"keyspace"`
	ReadRatio      float64       `mapstructure:"read-ratio"`
	Seed           uint64        `mapstructure:"seed"`
	ReportInterval time.Duration `mapstructure:"report-interval"`
	MetricsAddr    string        `mapstructure:"metrics-addr"`
	Log            LogConfig     `mapstructure:"log"`
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Capacity:  1024,
		Shards:    1,
		Workers:   4,
		Ops:       100_000,
		Keyspace:  4096,
		ReadRatio: 0.8,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// NewViper returns a viper instance wired for GOCACHE_* variables. Both "."
// and "-" in keys map to "_", so log.level reads GOCACHE_LOG_LEVEL and
// read-ratio reads GOCACHE_READ_RATIO.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load applies defaults, reads file (if non-empty), unmarshals and validates.
// Flags must already be bound to v by the caller.
func Load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("capacity", d.Capacity)
	v.SetDefault("shards", d.Shards)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("ops", d.Ops)
	v.SetDefault("keyspace", d.Keyspace)
	v.SetDefault("read-ratio", d.ReadRatio)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("report-interval", d.ReportInterval)
	v.SetDefault("metrics-addr", d.MetricsAddr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Capacity < 0 {
		errs = append(errs, fmt.Errorf("capacity must be >= 0, got %d", c.Capacity))
	}
	if c.Shards < 1 {
		errs = append(errs, fmt.Errorf("shards must be >= 1, got %d", c.Shards))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	if c.Ops < 0 {
		errs = append(errs, fmt.Errorf("ops must be >= 0, got %d", c.Ops))
	}
	if c.Keyspace < 1 {
		errs = append(errs, fmt.Errorf("keyspace must be >= 1, got %d", c.Keyspace))
	}
	if c.ReadRatio < 0 || c.ReadRatio > 1 {
		errs = append(errs, fmt.Errorf("read-ratio must be within [0, 1], got %g", c.ReadRatio))
	}
	if c.ReportInterval < 0 {
		errs = append(errs, fmt.Errorf("report-interval must not be negative, got %s", c.ReportInterval))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
