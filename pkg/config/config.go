package config

import (
	"winblur/pkg/blur"
	"winblur/pkg/effect"
	"winblur/pkg/logger"
)

// Config holds the application configuration.
type Config struct {
	// Configurable via JSON/YAML file (private fields to enforce immutability)
	effect       effect.Kind
	markerPrefix string
	resolve      blur.Resolve
	tintColor    uint32
	socketPath   string

	log *logger.Logger
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{
		log: log,
	}
}

// GetEffect returns the effect applied at startup.
func (c *Config) GetEffect() effect.Kind {
	return c.effect
}

// GetMarkerPrefix returns the marker title prefix.
func (c *Config) GetMarkerPrefix() string {
	return c.markerPrefix
}

// GetResolve returns the window resolution strategy.
func (c *Config) GetResolve() blur.Resolve {
	return c.resolve
}

// GetTintColor returns the accent gradient colour.
func (c *Config) GetTintColor() uint32 {
	return c.tintColor
}

// GetSocketPath returns the IPC socket path.
func (c *Config) GetSocketPath() string {
	return c.socketPath
}

// ApplicatorOptions returns the blur options this configuration implies.
func (c *Config) ApplicatorOptions() []blur.Option {
	return []blur.Option{
		blur.WithMarkerPrefix(c.markerPrefix),
		blur.WithResolve(c.resolve),
	}
}
