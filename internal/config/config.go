package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tradedeadline/internal/geo"
)

// Config holds every tunable of the trade map
type Config struct {
	Projection geo.Projection `mapstructure:"projection" yaml:"projection"`
	// FitToScreen replaces Projection.Size with the terminal map area
	FitToScreen        bool          `mapstructure:"fitToScreen" yaml:"fitToScreen"`
	Cadence            time.Duration `mapstructure:"cadence" yaml:"cadence"`
	TransitionDuration time.Duration `mapstructure:"transitionDuration" yaml:"transitionDuration"`
	StartDate          string        `mapstructure:"startDate" yaml:"startDate"`
	EndDate            string        `mapstructure:"endDate" yaml:"endDate"`
	CacheDir           string        `mapstructure:"cacheDir" yaml:"cacheDir"`
	LocationsFile      string        `mapstructure:"locationsFile" yaml:"locationsFile"`
	BaseURL            string        `mapstructure:"baseUrl" yaml:"baseUrl"`
}

func setDefaults(v *viper.Viper) {
	def := geo.DefaultProjection()

	v.SetDefault("projection.bounds.minLat", def.Bounds.MinLat)
	v.SetDefault("projection.bounds.maxLat", def.Bounds.MaxLat)
	v.SetDefault("projection.bounds.minLon", def.Bounds.MinLon)
	v.SetDefault("projection.bounds.maxLon", def.Bounds.MaxLon)
	v.SetDefault("projection.size.width", def.Size.Width)
	v.SetDefault("projection.size.height", def.Size.Height)
	// Terminal cells, not pixels
	v.SetDefault("projection.offset.x", 2)
	v.SetDefault("projection.offset.y", 1)
	v.SetDefault("projection.rotation", 0)

	v.SetDefault("fitToScreen", true)
	v.SetDefault("cadence", "2s")
	v.SetDefault("transitionDuration", "2s")
	v.SetDefault("startDate", "2025-07-15")
	v.SetDefault("endDate", "2025-08-01")
	v.SetDefault("cacheDir", "")
	v.SetDefault("locationsFile", "")
	v.SetDefault("baseUrl", "https://statsapi.mlb.com/api/v1")
}

// Load reads configuration from path (YAML, JSON or TOML by extension) on top
// of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// TRADEDEADLINE_PROJECTION_ROTATION sets projection.rotation
	v.SetEnvPrefix("TRADEDEADLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that would break playback or projection
func (c *Config) Validate() error {
	if c.Cadence <= 0 {
		return errors.New("cadence must be positive")
	}
	if c.TransitionDuration <= 0 {
		return errors.New("transitionDuration must be positive")
	}
	// Size is replaced later when fitting to the screen
	check := c.Projection
	if c.FitToScreen {
		check.Size = geo.Size{Width: 1, Height: 1}
	}
	if err := check.Validate(); err != nil {
		return fmt.Errorf("invalid projection: %w", err)
	}
	return nil
}

// DumpProjection renders live projection settings as YAML
func DumpProjection(p geo.Projection) ([]byte, error) {
	out, err := yaml.Marshal(struct {
		Projection geo.Projection `yaml:"projection"`
	}{p})
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return out, nil
}
