// Package config holds the container configuration: logging, the package to scan and
// the built-in interceptors to install.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sghaida/bring/logging"
)

// Config is the root configuration of a container.
type Config struct {
	Logging      logging.Config     `yaml:"logging" json:"logging"`
	Scan         ScanConfig         `yaml:"scan" json:"scan"`
	Interceptors InterceptorsConfig `yaml:"interceptors" json:"interceptors"`
}

// ScanConfig selects the definitions handed to the bean factory.
type ScanConfig struct {
	// Package is the package path prefix to scan, e.g. "github.com/acme/app/books".
	Package string `yaml:"package" json:"package"`
}

// InterceptorsConfig toggles the built-in interceptors. They are installed in the
// order veto, lifecycle, logging, metrics.
type InterceptorsConfig struct {
	Lifecycle bool     `yaml:"lifecycle" json:"lifecycle"`
	Logging   bool     `yaml:"logging" json:"logging"`
	Metrics   bool     `yaml:"metrics" json:"metrics"`
	Veto      []string `yaml:"veto" json:"veto"`
}

// DefaultConfig returns the configuration used when nothing else is supplied.
func DefaultConfig() *Config {
	return &Config{
		Logging: *logging.DefaultConfig(),
		Interceptors: InterceptorsConfig{
			Lifecycle: true,
		},
	}
}

// Validate checks the configuration for values the container cannot work with.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if strings.TrimSpace(c.Scan.Package) != c.Scan.Package {
		return fmt.Errorf("scan.package %q has surrounding whitespace", c.Scan.Package)
	}
	for i, name := range c.Interceptors.Veto {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("interceptors.veto[%d] cannot be empty", i)
		}
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
