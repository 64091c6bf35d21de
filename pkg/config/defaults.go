package config

import (
	"os"
	"path/filepath"

	"winblur/pkg/blur"
	"winblur/pkg/effect"
	"winblur/pkg/logger"
)

const (
	DefaultTintColor = 0x01000000
	socketFileName   = "winblur.sock"
)

// DefaultConfig creates a default configuration.
func DefaultConfig(log *logger.Logger) *Config {
	config := &Config{
		effect:       effect.Acrylic,
		markerPrefix: blur.DefaultMarkerPrefix,
		resolve:      blur.ResolveTitle,
		tintColor:    DefaultTintColor,
		socketPath:   defaultSocketPath(),
		log:          log,
	}

	log.Debug("Created default configuration",
		"effect", config.effect.String(),
		"marker_prefix", config.markerPrefix,
		"socket_path", config.socketPath)

	return config
}

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), socketFileName)
}
