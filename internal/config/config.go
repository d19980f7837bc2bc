// Package config loads greenroi settings from defaults, an optional YAML
// file and GREENROI_* environment variables, in that order of precedence.
// Command-line flags are applied on top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/engine/batch"
	"github.com/rshade/greenroi/internal/engine/cache"
	"github.com/rshade/greenroi/internal/fabrication"
)

// Fabrication source names.
const (
	SourceStatic   = "static"
	SourceBoavizta = "boavizta"
)

// Config is the full greenroi configuration.
type Config struct {
	Assumptions engine.Assumptions `yaml:"assumptions" json:"assumptions"`
	Output      OutputConfig       `yaml:"output" json:"output"`
	Logging     LoggingConfig      `yaml:"logging" json:"logging"`
	Fabrication FabricationConfig  `yaml:"fabrication" json:"fabrication"`
	Cache       CacheConfig        `yaml:"cache" json:"cache"`
	Processing  ProcessingConfig   `yaml:"processing" json:"processing"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format" validate:"oneof=table json ndjson csv"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=console json"`

	// File sends logs to a file instead of stderr when set.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// FabricationConfig selects the embodied CO2 data source.
type FabricationConfig struct {
	Source         string `yaml:"source" json:"source" validate:"oneof=static boavizta"`
	URL            string `yaml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds" validate:"gte=1,lte=300"`
}

// CacheConfig controls the on-disk fabrication cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Directory defaults to <config dir>/cache when empty.
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`

	// TTL accepts seconds, Go durations or days ("7d").
	TTL string `yaml:"ttl" json:"ttl"`
}

// ProcessingConfig tunes row evaluation.
type ProcessingConfig struct {
	Workers   int `yaml:"workers" json:"workers" validate:"gte=1,lte=64"`
	BatchSize int `yaml:"batch_size" json:"batch_size" validate:"gte=1,lte=1000"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Assumptions: engine.DefaultAssumptions(),
		Output:      OutputConfig{DefaultFormat: "table"},
		Logging:     LoggingConfig{Level: "info", Format: "console"},
		Fabrication: FabricationConfig{
			Source:         SourceStatic,
			URL:            fabrication.DefaultBaseURL,
			TimeoutSeconds: int(fabrication.DefaultTimeout.Seconds()),
		},
		Cache:      CacheConfig{Enabled: true, TTL: cache.FormatTTL(cache.DefaultTTL)},
		Processing: ProcessingConfig{Workers: 4, BatchSize: batch.DefaultBatchSize},
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment, then validates it. An empty path uses DefaultConfigPath
// when that file exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	return LoadWithLookup(path, os.LookupEnv)
}

// LoadWithLookup is Load with an explicit environment lookup.
func LoadWithLookup(path string, lookup LookupFunc) (*Config, error) {
	cfg := New()

	if path == "" {
		def, err := DefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(def); statErr == nil {
				path = def
			}
		}
	}
	if path != "" {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// CacheDir returns the cache directory, defaulting under the config dir.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}
