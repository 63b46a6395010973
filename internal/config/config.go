// Package config provides configuration management for the Harville prober.
package config

import (
	"time"

	"github.com/yourusername/harville-prober/internal/probability"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Engine  EngineConfig  `mapstructure:"engine" validate:"required"`
	Staking StakingConfig `mapstructure:"staking" validate:"required"`
	Cache   CacheConfig   `mapstructure:"cache" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig represents probability engine configuration
type EngineConfig struct {
	Coefficients   []float64 `mapstructure:"coefficients" validate:"max=4,coefficients"`
	MaxCompetitors int       `mapstructure:"max_competitors" validate:"gte=0"`
}

// StakingConfig represents stake sizing configuration
type StakingConfig struct {
	Bankroll      float64 `mapstructure:"bankroll" validate:"gte=0"`
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
}

// CacheConfig represents the engine cache configuration
type CacheConfig struct {
	TTLSeconds     int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	CleanupSeconds int `mapstructure:"cleanup_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CorrectionCoefficients returns the engine coefficients padded to four levels
func (c *Config) CorrectionCoefficients() (probability.Coefficients, error) {
	return probability.NewCoefficients(c.Engine.Coefficients...)
}

// CacheTTL returns how long a race's engine stays cached
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// CacheCleanupInterval returns how often expired engines are purged
func (c *Config) CacheCleanupInterval() time.Duration {
	return time.Duration(c.Cache.CleanupSeconds) * time.Second
}
