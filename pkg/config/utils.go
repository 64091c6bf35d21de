package config

import (
	"fmt"
	"os"
	"path/filepath"

	"winblur/pkg/logger"
)

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, log *logger.Logger) (*Config, error) {
	// Try provided path first if specified
	if providedPath != "" {
		config, err := loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	// Try default path, create if doesn't exist
	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		config := DefaultConfig(log)
		if err := config.WriteFile(defaultPath); err != nil {
			log.Error("Failed to write default config", err, "path", defaultPath)
			return nil, err
		}
		log.Info("Wrote default configuration", "path", defaultPath)
		return config, nil
	}

	config, err := loadConfigFromPath(defaultPath, log)
	if err != nil {
		log.Warn("Falling back to default configuration", "path", defaultPath, "error", err.Error())
		return DefaultConfig(log), nil
	}
	return config, nil
}

// FindConfig locates and initializes the configuration.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	homeConfigDir, err := os.UserConfigDir()
	if err != nil {
		log.Error("Failed to get user config directory", err)
		return nil, err
	}
	return findConfigIn(providedPath, filepath.Join(homeConfigDir, "winblur"), log)
}

func findConfigIn(providedPath string, configDir string, log *logger.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	defaultConfigPath := filepath.Join(configDir, "config.json")
	log.Debug("Configuration paths",
		"config_dir", configDir,
		"config_path", defaultConfigPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		log.Error("Failed to create directory", err, "path", configDir)
		return nil, err
	}

	return initializeConfig(providedPath, defaultConfigPath, log)
}
