package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/archiveview/graphview/pkg/layout"
)

// SourceConfig selects where the dataset document comes from
type SourceConfig struct {
	// Kind is one of "http", "file", "s3"
	Kind string `yaml:"kind" validate:"required,oneof=http file s3"`

	URL  string `yaml:"url" validate:"required_if=Kind http,omitempty,url"`
	Path string `yaml:"path" validate:"required_if=Kind file"`

	Bucket    string `yaml:"bucket" validate:"required_if=Kind s3"`
	Key       string `yaml:"key" validate:"required_if=Kind s3"`
	Region    string `yaml:"region" validate:"required_if=Kind s3"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// CacheConfig controls the optional on-disk snapshot fallback
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Config is the full application configuration
type Config struct {
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`

	// DebounceMS is the quiet period for continuous filter inputs
	DebounceMS int `yaml:"debounce_ms" validate:"gte=0,lte=2000"`

	// Seed fixes the initial node placement for reproducible layouts
	Seed int64 `yaml:"seed"`

	Layout layout.Config `yaml:"layout"`

	ViewportWidth  float64 `yaml:"viewport_width" validate:"gt=0"`
	ViewportHeight float64 `yaml:"viewport_height" validate:"gt=0"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Source:         SourceConfig{Kind: "http", URL: "http://localhost:8080/api/graph"},
		DebounceMS:     200,
		Seed:           1,
		Layout:         layout.DefaultConfig(),
		ViewportWidth:  1280,
		ViewportHeight: 800,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file over the defaults and validates it
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints
func (c Config) Validate() error {
	if err := validate.Struct(&c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Debounce returns the debounce interval as a duration
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
