package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/samirrijal/quadroute/internal/core/domain"
	"github.com/samirrijal/quadroute/internal/pkg/geospatial"
)

// Config holds all application configuration.
type Config struct {
	Projection geospatial.ProjectionConfig `mapstructure:"projection"`
	Quadtree   QuadtreeConfig              `mapstructure:"quadtree"`
	Routing    RoutingConfig               `mapstructure:"routing"`
	Log        LogConfig                   `mapstructure:"log"`
}

type QuadtreeConfig struct {
	Zoom      int    `mapstructure:"zoom"`
	Separator string `mapstructure:"separator"`
}

// RoutingConfig holds the routing key header used for published messages.
type RoutingConfig struct {
	Zoom           int    `mapstructure:"zoom"`
	MessageType    string `mapstructure:"message_type"`
	MessageVersion string `mapstructure:"version"`
	Provider       string `mapstructure:"provider"`
	Subtype        string `mapstructure:"subtype"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"earth-radius": "projection.earth_radius",
	"tile-size":    "projection.tile_size",
	"zoom":         "quadtree.zoom",
	"sep":          "quadtree.separator",
	"routing-zoom": "routing.zoom",
	"type":         "routing.message_type",
	"version":      "routing.version",
	"provider":     "routing.provider",
	"subtype":      "routing.subtype",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// Load reads configuration from defaults, an optional config file, environment
// variables and flags, in increasing order of precedence. flags may be nil.
func Load(service string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("projection.earth_radius", geospatial.DefaultEarthRadius)
	v.SetDefault("projection.tile_size", geospatial.DefaultTileSize)
	v.SetDefault("quadtree.zoom", 16)
	v.SetDefault("quadtree.separator", "")
	v.SetDefault("routing.zoom", 18)
	v.SetDefault("routing.message_type", "DENM")
	v.SetDefault("routing.version", "1_2_1")
	v.SetDefault("routing.provider", service)
	v.SetDefault("routing.subtype", "0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: QUADROUTE_QUADTREE_ZOOM → quadtree.zoom
	v.SetEnvPrefix("QUADROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if !(c.Projection.EarthRadius > 0) {
		errs = append(errs, fmt.Sprintf("projection.earth_radius must be positive, got %v", c.Projection.EarthRadius))
	}
	if c.Projection.TileSize <= 0 {
		errs = append(errs, fmt.Sprintf("projection.tile_size must be positive, got %d", c.Projection.TileSize))
	}
	if c.Quadtree.Zoom > domain.MaxZoom {
		errs = append(errs, fmt.Sprintf("quadtree.zoom must be at most %d, got %d", domain.MaxZoom, c.Quadtree.Zoom))
	}
	if err := domain.ValidateSeparator(c.Quadtree.Separator); err != nil {
		errs = append(errs, "quadtree.separator: "+err.Error())
	}
	if c.Routing.Zoom > domain.MaxZoom {
		errs = append(errs, fmt.Sprintf("routing.zoom must be at most %d, got %d", domain.MaxZoom, c.Routing.Zoom))
	}
	header := domain.RoutingKey{
		MessageType:    c.Routing.MessageType,
		MessageVersion: c.Routing.MessageVersion,
		Provider:       c.Routing.Provider,
		Subtype:        c.Routing.Subtype,
	}
	if _, err := header.Header(); err != nil {
		errs = append(errs, "routing: "+err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
