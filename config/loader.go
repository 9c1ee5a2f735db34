package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix prefixes every environment key read by the Loader.
const DefaultEnvPrefix = "BRING"

// Loader handles loading configuration from various sources
type Loader struct {
	// ConfigFile is the path to the YAML configuration file
	ConfigFile string
	// EnvFiles are dotenv files consulted after the YAML file
	EnvFiles []string
	// EnvPrefix is the prefix for environment variables (defaults to "BRING")
	EnvPrefix string

	lookup func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		EnvPrefix: DefaultEnvPrefix,
		lookup:    os.LookupEnv,
	}
}

// WithConfigFile sets the configuration file path
func (l *Loader) WithConfigFile(path string) *Loader {
	l.ConfigFile = path
	return l
}

// WithEnvFiles adds dotenv files. Missing files are an error.
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.EnvFiles = append(l.EnvFiles, files...)
	return l
}

// WithEnvPrefix sets the environment variable prefix
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.EnvPrefix = prefix
	return l
}

// Load loads configuration from all sources in priority order:
// 1. Default configuration
// 2. Configuration file (if specified)
// 3. Dotenv files (if specified)
// 4. Environment variables
//
// Dotenv values are never exported to the process environment.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	if l.ConfigFile != "" {
		if err := l.loadFromFile(config); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	dotenv := map[string]string{}
	if len(l.EnvFiles) > 0 {
		values, err := godotenv.Read(l.EnvFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to read env files: %w", err)
		}
		dotenv = values
	}

	l.loadFromEnv(config, dotenv)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func (l *Loader) loadFromFile(config *Config) error {
	data, err := os.ReadFile(l.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", l.ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config file: %w", err)
	}

	return nil
}

// loadFromEnv applies dotenv values and then process environment values on top.
func (l *Loader) loadFromEnv(config *Config, dotenv map[string]string) {
	get := func(key string) string {
		full := l.EnvPrefix + "_" + key
		if v, ok := l.lookupEnv(full); ok {
			return v
		}
		return dotenv[full]
	}

	if val := get("LOGGING_LEVEL"); val != "" {
		config.Logging.Level = val
	}
	if val := get("LOGGING_FORMAT"); val != "" {
		config.Logging.Format = val
	}

	if val := get("SCAN_PACKAGE"); val != "" {
		config.Scan.Package = val
	}

	if val := get("INTERCEPTORS_LIFECYCLE"); val != "" {
		config.Interceptors.Lifecycle = parseBool(val, config.Interceptors.Lifecycle)
	}
	if val := get("INTERCEPTORS_LOGGING"); val != "" {
		config.Interceptors.Logging = parseBool(val, config.Interceptors.Logging)
	}
	if val := get("INTERCEPTORS_METRICS"); val != "" {
		config.Interceptors.Metrics = parseBool(val, config.Interceptors.Metrics)
	}
	if val := get("INTERCEPTORS_VETO"); val != "" {
		config.Interceptors.Veto = splitList(val)
	}
}

func (l *Loader) lookupEnv(key string) (string, bool) {
	if l.lookup == nil {
		return os.LookupEnv(key)
	}
	return l.lookup(key)
}

// parseBool parses a boolean string, returning fallback on error
func parseBool(val string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return fallback
	}
}

// splitList splits a comma separated list and drops empty items.
func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadFromFile is a convenience function to load configuration from a file
func LoadFromFile(filename string) (*Config, error) {
	return NewLoader().WithConfigFile(filename).Load()
}

// LoadFromEnv is a convenience function to load configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}
