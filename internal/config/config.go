// Package config resolves Sylva configuration from defaults, an
// optional YAML file, and SYLVA_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/boisvert/sylva/internal/engine/indicators"
)

// Config holds all Sylva configuration.
type Config struct {
	Log        Log
	Catalog    Catalog
	Engine     Engine
	Dispatcher Dispatcher
	Cache      Cache
}

// Log holds logging settings.
type Log struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
}

// Catalog holds the issue catalog location.
type Catalog struct {
	Path string
}

// Engine holds diagnostic engine settings.
type Engine struct {
	MinConfidence float64
	Thresholds    indicators.Thresholds
}

// Dispatcher holds scale-adaptive execution settings.
type Dispatcher struct {
	AutoSelect    bool
	TreeThreshold int
	BatchSize     int
	MaxWorkers    int
}

// Cache holds result-cache settings.
type Cache struct {
	Enabled bool
	TTL     time.Duration
}

// Load resolves configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SYLVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Catalog: Catalog{
			Path: v.GetString("catalog.path"),
		},
		Engine: Engine{
			MinConfidence: v.GetFloat64("engine.min_confidence"),
			Thresholds: indicators.Thresholds{
				Defoliation:       v.GetFloat64("engine.thresholds.defoliation"),
				Discoloration:     v.GetFloat64("engine.thresholds.discoloration"),
				PestPresence:      v.GetFloat64("engine.thresholds.pest_presence"),
				BarkDamage:        v.GetFloat64("engine.thresholds.bark_damage"),
				CrownTransparency: v.GetFloat64("engine.thresholds.crown_transparency"),
				Mortality:         v.GetFloat64("engine.thresholds.mortality"),
			},
		},
		Dispatcher: Dispatcher{
			AutoSelect:    v.GetBool("dispatcher.auto_select"),
			TreeThreshold: v.GetInt("dispatcher.tree_threshold"),
			BatchSize:     v.GetInt("dispatcher.batch_size"),
			MaxWorkers:    v.GetInt("dispatcher.max_workers"),
		},
		Cache: Cache{
			Enabled: v.GetBool("cache.enabled"),
			TTL:     v.GetDuration("cache.ttl"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("catalog.path", "catalog.yaml")
	v.SetDefault("engine.min_confidence", 0.2)

	th := indicators.DefaultThresholds()
	v.SetDefault("engine.thresholds.defoliation", th.Defoliation)
	v.SetDefault("engine.thresholds.discoloration", th.Discoloration)
	v.SetDefault("engine.thresholds.pest_presence", th.PestPresence)
	v.SetDefault("engine.thresholds.bark_damage", th.BarkDamage)
	v.SetDefault("engine.thresholds.crown_transparency", th.CrownTransparency)
	v.SetDefault("engine.thresholds.mortality", th.Mortality)

	v.SetDefault("dispatcher.auto_select", true)
	v.SetDefault("dispatcher.tree_threshold", 100)
	v.SetDefault("dispatcher.batch_size", 250)
	v.SetDefault("dispatcher.max_workers", 4)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 15*time.Minute)
}
