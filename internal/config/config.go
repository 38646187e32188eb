// Package config loads tracklet configuration via Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tracklet settings.
type Config struct {
	Storage StorageConfig
	Refresh RefreshConfig
}

// StorageConfig selects the persistence backend and its location.
type StorageConfig struct {
	// Backend is "json" or "sqlite".
	Backend string
	// Path is the data file. The json default matches the file name the
	// original tracker used, so existing data is picked up as-is.
	Path string
}

// RefreshConfig sets the two periodic driver cadences: the fast display
// tick and the slow day-rollover check.
type RefreshConfig struct {
	TickInterval time.Duration
	RollInterval time.Duration
}

// Load reads configuration from config.yaml (searched in ~/.tracklet
// and the working directory) with TRACKLET_* environment overrides.
// A missing config file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".tracklet"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("tracklet")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend: v.GetString("storage.backend"),
			Path:    v.GetString("storage.path"),
		},
		Refresh: RefreshConfig{
			TickInterval: v.GetDuration("refresh.tick_interval"),
			RollInterval: v.GetDuration("refresh.roll_interval"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "json")
	v.SetDefault("storage.path", defaultDataPath())
	v.SetDefault("refresh.tick_interval", time.Second)
	v.SetDefault("refresh.roll_interval", time.Minute)
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "time_tracker_data.json"
	}
	return filepath.Join(home, ".tracklet", "time_tracker_data.json")
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be json or sqlite, got %q", c.Storage.Backend)
	}
	if c.Refresh.TickInterval <= 0 || c.Refresh.RollInterval <= 0 {
		return fmt.Errorf("refresh intervals must be positive")
	}
	return nil
}
