package config

import (
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates and describes the census source file.
type DatasetConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
	Encoding  string `yaml:"encoding" mapstructure:"encoding"`
	Sheet     string `yaml:"sheet" mapstructure:"sheet"`
}

// DelimiterRune returns the first rune of Delimiter, or ',' when unset.
func (d DatasetConfig) DelimiterRune() rune {
	if d.Delimiter == "" {
		return ','
	}
	if d.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// RenderConfig sizes charts and configures the map view.
type RenderConfig struct {
	Width         int    `yaml:"width" mapstructure:"width"`
	Height        int    `yaml:"height" mapstructure:"height"`
	MapZoom       int    `yaml:"map_zoom" mapstructure:"map_zoom"`
	MapStyle      string `yaml:"map_style" mapstructure:"map_style"`
	HistogramBins int    `yaml:"histogram_bins" mapstructure:"histogram_bins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CENSUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "data.csv")
	v.SetDefault("dataset.delimiter", ",")
	v.SetDefault("dataset.encoding", "utf-8")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("server.port", 8501)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("render.width", 960)
	v.SetDefault("render.height", 540)
	v.SetDefault("render.map_zoom", 4)
	v.SetDefault("render.map_style", "open-street-map")
	v.SetDefault("render.histogram_bins", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. Mode is the command name:
// "serve", "render", "export" or "options".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimit <= 0 {
			errs = append(errs, "server.rate_limit must be > 0")
		}
		if c.Server.RateBurst < 1 {
			errs = append(errs, "server.rate_burst must be >= 1")
		}
	case "render", "export", "options":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if strings.TrimSpace(c.Dataset.Path) == "" {
		errs = append(errs, "dataset.path is required")
	}
	if utf8.RuneCountInString(c.Dataset.Delimiter) > 1 && c.Dataset.Delimiter != `\t` {
		errs = append(errs, "dataset.delimiter must be a single character")
	}
	if mode == "serve" || mode == "render" {
		if c.Render.Width <= 0 || c.Render.Height <= 0 {
			errs = append(errs, "render.width and render.height must be > 0")
		}
		if c.Render.HistogramBins < 1 || c.Render.HistogramBins > 200 {
			errs = append(errs, "render.histogram_bins must be between 1 and 200")
		}
		if c.Render.MapZoom < 0 || c.Render.MapZoom > 18 {
			errs = append(errs, "render.map_zoom must be between 0 and 18")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
