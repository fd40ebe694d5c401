package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data.csv", cfg.Dataset.Path)
	assert.Equal(t, ",", cfg.Dataset.Delimiter)
	assert.Equal(t, "utf-8", cfg.Dataset.Encoding)
	assert.Empty(t, cfg.Dataset.Sheet)
	assert.Equal(t, 8501, cfg.Server.Port)
	assert.InDelta(t, 20.0, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 40, cfg.Server.RateBurst)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 960, cfg.Render.Width)
	assert.Equal(t, 540, cfg.Render.Height)
	assert.Equal(t, 4, cfg.Render.MapZoom)
	assert.Equal(t, "open-street-map", cfg.Render.MapStyle)
	assert.Equal(t, 16, cfg.Render.HistogramBins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
dataset:
  path: census/india.csv
  delimiter: ";"
log:
  level: debug
  format: console
server:
  port: 9090
  cors_origins:
    - https://example.org
render:
  map_style: carto-positron
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "census/india.csv", cfg.Dataset.Path)
	assert.Equal(t, ';', cfg.Dataset.DelimiterRune())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "carto-positron", cfg.Render.MapStyle)
	// Defaults still apply for unset values
	assert.Equal(t, 960, cfg.Render.Width)
	assert.Equal(t, "utf-8", cfg.Dataset.Encoding)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
dataset:
  path: from-file.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CENSUS_DATASET_PATH", "from-env.csv")
	t.Setenv("CENSUS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "from-env.csv", cfg.Dataset.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CENSUS_SERVER_PORT", "3000")
	t.Setenv("CENSUS_RENDER_HISTOGRAM_BINS", "32")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 32, cfg.Render.HistogramBins)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', DatasetConfig{}.DelimiterRune())
	assert.Equal(t, '|', DatasetConfig{Delimiter: "|"}.DelimiterRune())
	assert.Equal(t, '\t', DatasetConfig{Delimiter: `\t`}.DelimiterRune())
	assert.Equal(t, '\t', DatasetConfig{Delimiter: "\t"}.DelimiterRune())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Dataset.Path = "data.csv"
	cfg.Dataset.Delimiter = ","
	cfg.Server.Port = 8501
	cfg.Server.RateLimit = 20
	cfg.Server.RateBurst = 40
	cfg.Render.Width = 960
	cfg.Render.Height = 540
	cfg.Render.MapZoom = 4
	cfg.Render.HistogramBins = 16
	return cfg
}

func TestValidate_AllModes(t *testing.T) {
	cfg := validDefaults()
	for _, mode := range []string{"serve", "render", "export", "options"} {
		assert.NoError(t, cfg.Validate(mode), mode)
	}
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")

	// Port only matters when serving.
	assert.NoError(t, cfg.Validate("render"))
}

func TestValidateServe_RateLimit(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.RateLimit = 0
	cfg.Server.RateBurst = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.rate_limit must be > 0")
	assert.Contains(t, err.Error(), "server.rate_burst must be >= 1")
}

func TestValidate_Dataset(t *testing.T) {
	cfg := validDefaults()
	cfg.Dataset.Path = " "
	cfg.Dataset.Delimiter = "::"

	err := cfg.Validate("export")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dataset.path is required")
	assert.Contains(t, err.Error(), "dataset.delimiter must be a single character")
}

func TestValidate_RenderBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Render.HistogramBins = 0
	err := cfg.Validate("render")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "histogram_bins must be between 1 and 200")

	cfg.Render.HistogramBins = 16
	cfg.Render.MapZoom = 19
	err = cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "map_zoom")

	cfg.Render.MapZoom = 4
	cfg.Render.Width = -1
	err = cfg.Validate("render")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "render.width and render.height must be > 0")

	// Render settings are not used by export.
	assert.NoError(t, cfg.Validate("export"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
