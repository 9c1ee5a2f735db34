package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap returns a loader lookup backed by a fixed map instead of the process environment.
func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_NewLoader(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	assert.Equal(t, "BRING", loader.EnvPrefix)
	assert.Empty(t, loader.ConfigFile)
	assert.Empty(t, loader.EnvFiles)
}

func TestLoader_Builders(t *testing.T) {
	t.Parallel()

	loader := NewLoader().
		WithConfigFile("/path/to/bring.yaml").
		WithEnvFiles("a.env").
		WithEnvFiles("b.env").
		WithEnvPrefix("TEST")

	assert.Equal(t, "/path/to/bring.yaml", loader.ConfigFile)
	assert.Equal(t, []string{"a.env", "b.env"}, loader.EnvFiles)
	assert.Equal(t, "TEST", loader.EnvPrefix)
}

func TestLoader_LoadDefault(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	loader.lookup = envMap(nil)

	config, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoader_LoadFromFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bring.yaml", `
logging:
  level: debug
  format: console
scan:
  package: github.com/acme/books
interceptors:
  lifecycle: false
  logging: true
  metrics: true
  veto: [dune, legacy]
`)

	loader := NewLoader().WithConfigFile(path)
	loader.lookup = envMap(nil)

	config, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
	assert.Equal(t, "github.com/acme/books", config.Scan.Package)
	assert.False(t, config.Interceptors.Lifecycle)
	assert.True(t, config.Interceptors.Logging)
	assert.True(t, config.Interceptors.Metrics)
	assert.Equal(t, []string{"dune", "legacy"}, config.Interceptors.Veto)
}

func TestLoader_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bring.yaml", `
logging:
  level: warn
scan:
  package: from/file
interceptors:
  metrics: false
`)
	dotenv := writeFile(t, dir, ".env", `
BRING_SCAN_PACKAGE=from/dotenv
BRING_INTERCEPTORS_METRICS=true
BRING_INTERCEPTORS_VETO="a, b,,c"
`)

	loader := NewLoader().WithConfigFile(path).WithEnvFiles(dotenv)
	loader.lookup = envMap(map[string]string{
		"BRING_SCAN_PACKAGE": "from/env",
	})

	config, err := loader.Load()
	require.NoError(t, err)

	// file beats defaults
	assert.Equal(t, "warn", config.Logging.Level)
	// dotenv beats file
	assert.True(t, config.Interceptors.Metrics)
	assert.Equal(t, []string{"a", "b", "c"}, config.Interceptors.Veto)
	// process env beats dotenv
	assert.Equal(t, "from/env", config.Scan.Package)
}

func TestLoader_EnvPrefix(t *testing.T) {
	t.Parallel()

	loader := NewLoader().WithEnvPrefix("APP")
	loader.lookup = envMap(map[string]string{
		"APP_LOGGING_LEVEL":          "error",
		"BRING_LOGGING_LEVEL":        "debug",
		"APP_INTERCEPTORS_LIFECYCLE": "off",
		"APP_INTERCEPTORS_LOGGING":   "maybe",
	})

	config, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "error", config.Logging.Level)
	assert.False(t, config.Interceptors.Lifecycle)
	// unparsable booleans keep the previous value
	assert.False(t, config.Interceptors.Logging)
}

func TestLoader_ProcessEnvironment(t *testing.T) {
	t.Setenv("BRING_SCAN_PACKAGE", "github.com/acme/env")

	config, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/env", config.Scan.Package)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := NewLoader().WithConfigFile(filepath.Join(dir, "missing.yaml")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")

	bad := writeFile(t, dir, "bad.yaml", "logging: [unclosed")
	_, err = LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config file")

	_, err = NewLoader().WithEnvFiles(filepath.Join(dir, "missing.env")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env files")

	invalid := writeFile(t, dir, "invalid.yaml", "logging:\n  level: loud\n")
	_, err = LoadFromFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultConfig().Validate())

	c := DefaultConfig()
	c.Logging.Format = "xml"
	assert.ErrorContains(t, c.Validate(), "logging:")

	c = DefaultConfig()
	c.Scan.Package = " pkg"
	assert.ErrorContains(t, c.Validate(), "surrounding whitespace")

	c = DefaultConfig()
	c.Interceptors.Veto = []string{"a", " "}
	assert.EqualError(t, c.Validate(), "interceptors.veto[1] cannot be empty")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yaml")
	c := DefaultConfig()
	c.Scan.Package = "github.com/acme/books"
	c.Interceptors.Veto = []string{"dune"}
	require.NoError(t, c.Save(path))

	loader := NewLoader().WithConfigFile(path)
	loader.lookup = envMap(nil)
	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}
