package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"winblur/pkg/blur"
	"winblur/pkg/effect"
	"winblur/pkg/logger"
)

// fileConfig is the on-disk shape of Config. Empty fields keep the current value.
type fileConfig struct {
	Effect       string `json:"effect,omitempty" yaml:"effect,omitempty"`
	MarkerPrefix string `json:"marker_prefix,omitempty" yaml:"marker_prefix,omitempty"`
	Resolve      string `json:"resolve,omitempty" yaml:"resolve,omitempty"`
	TintColor    string `json:"tint_color,omitempty" yaml:"tint_color,omitempty"`
	SocketPath   string `json:"socket_path,omitempty" yaml:"socket_path,omitempty"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFromFile loads the configuration from a JSON or YAML file, chosen by
// extension.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	var temp fileConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &temp)
	} else {
		err = json.Unmarshal(data, &temp)
	}
	if err != nil {
		log.Error("Failed to parse config file", err, "path", path)
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	log.Debug("Config file parsed successfully")

	return c.apply(temp)
}

func (c *Config) apply(temp fileConfig) error {
	if temp.Effect != "" {
		kind, err := effect.ParseKind(temp.Effect)
		if err != nil {
			return fmt.Errorf("invalid effect: %w", err)
		}
		c.effect = kind
	}
	if temp.MarkerPrefix != "" {
		c.markerPrefix = temp.MarkerPrefix
	}
	if temp.Resolve != "" {
		r, err := blur.ParseResolve(temp.Resolve)
		if err != nil {
			return fmt.Errorf("invalid resolve: %w", err)
		}
		c.resolve = r
	}
	if temp.TintColor != "" {
		tint, err := strconv.ParseUint(temp.TintColor, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid tint_color %q: %w", temp.TintColor, err)
		}
		c.tintColor = uint32(tint)
	}
	if temp.SocketPath != "" {
		c.socketPath = temp.SocketPath
	}
	return nil
}

func (c *Config) toFile() fileConfig {
	return fileConfig{
		Effect:       c.effect.String(),
		MarkerPrefix: c.markerPrefix,
		Resolve:      c.resolve.String(),
		TintColor:    fmt.Sprintf("0x%08x", c.tintColor),
		SocketPath:   c.socketPath,
	}
}

// WriteFile saves the configuration to path in JSON or YAML form.
func (c *Config) WriteFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c.toFile())
	} else {
		data, err = json.MarshalIndent(c.toFile(), "", "    ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// loadConfigFromPath loads the configuration from a file on top of the defaults.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config := DefaultConfig(log)
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}
