package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// defaultTTLSeconds is the report cache time-to-live when unconfigured.
const defaultTTLSeconds = 60

// Config is the top-level configuration for depdoctor.
type Config struct {
	TTLSeconds     int      `yaml:"ttl_seconds"`     // Report cache TTL
	SkipEcosystems []string `yaml:"skip_ecosystems"` // Ecosystem names to skip
	ExcludeDirs    []string `yaml:"exclude_dirs"`    // Extra dirs the cross-referencer skips
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		TTLSeconds: defaultTTLSeconds,
	}
}

// TTL returns the cache time-to-live as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := Validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// LoadOrDefault loads the given config file, falls back to auto-detection,
// and finally to defaults when no file exists anywhere.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return Default(), nil
	}

	logger.Infof("Using config file: %s", found)
	return Load(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depdoctor.yaml",
		".depdoctor.yml",
		"depdoctor.yaml",
		"depdoctor.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks for usable configuration values.
func Validate(cfg *Config) error {
	if cfg.TTLSeconds < 0 {
		return fmt.Errorf("ttl_seconds must not be negative, got %d", cfg.TTLSeconds)
	}

	for i, name := range cfg.SkipEcosystems {
		if name == "" {
			return fmt.Errorf("skip_ecosystems[%d] must not be empty", i)
		}
	}

	for i, dir := range cfg.ExcludeDirs {
		if dir == "" {
			return fmt.Errorf("exclude_dirs[%d] must not be empty", i)
		}
		if filepath.IsAbs(dir) {
			return fmt.Errorf("exclude_dirs[%d] must be a directory name, not an absolute path", i)
		}
	}

	return nil
}
