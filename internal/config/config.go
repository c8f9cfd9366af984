package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/hdr"
)

const (
	DefaultPreset = "balanced"

	defaultWidth       = 1280
	defaultHeight      = 720
	defaultFPS         = 30
	defaultTelemetryHz = 10.0
	defaultListenAddr  = ":8000"
	defaultMetricsDB   = "/var/lib/gplctl/metrics.db"
)

// Config is the full application configuration, loaded once at startup.
type Config struct {
	Preset      string  `mapstructure:"preset"`
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	FPS         int     `mapstructure:"fps"`
	Knee        float64 `mapstructure:"knee"`
	TelemetryHz float64 `mapstructure:"telemetry_hz"`
	TelemetryDB string  `mapstructure:"telemetry_db"`
	Metrics     bool    `mapstructure:"metrics"`
	MetricsDB   string  `mapstructure:"metrics_db"`
	ListenAddr  string  `mapstructure:"listen"`
	Debug       bool    `mapstructure:"debug"`
	Verbose     bool    `mapstructure:"verbose"`

	// Presets and Mappings start from the shipped defaults; the config
	// file may add or override entries. Validated here so a malformed
	// table fails at startup, not at frame time.
	Presets  map[string]hdr.Preset `mapstructure:"-"`
	Mappings hdr.MappingSet        `mapstructure:"-"`
}

// Load reads configuration from file, environment and defaults.
// Lookup order for the file: explicit path argument, GPL_CONFIG
// environment variable, gplctl.toml in the working directory or /etc.
func Load(path string) (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("GPL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("preset", DefaultPreset)
	v.SetDefault("width", defaultWidth)
	v.SetDefault("height", defaultHeight)
	v.SetDefault("fps", defaultFPS)
	v.SetDefault("knee", hdr.DefaultKnee)
	v.SetDefault("telemetry_hz", defaultTelemetryHz)
	v.SetDefault("telemetry_db", "")
	v.SetDefault("metrics", false)
	v.SetDefault("metrics_db", defaultMetricsDB)
	v.SetDefault("listen", defaultListenAddr)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	if path == "" {
		path = os.Getenv("GPL_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName("gplctl")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	cfg.Presets = hdr.DefaultPresets()
	if err := loadPresets(v, cfg.Presets); err != nil {
		return nil, err
	}

	cfg.Mappings = hdr.DefaultMappings()
	if err := loadMappings(v, cfg.Mappings); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded configuration once, up front.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Width <= 0 || c.Height <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "frame dimensions must be positive")
	}
	if c.FPS <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "fps must be positive")
	}
	if c.TelemetryHz <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry_hz must be positive")
	}
	if c.Metrics && c.MetricsDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "metrics enabled without metrics_db")
	}
	// An unknown preset id is not a load failure: the processor degrades
	// to hard-coded defaults.
	return c.Mappings.Validate()
}

// SampleInterval converts the configured telemetry rate to a duration.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TelemetryHz)
}
