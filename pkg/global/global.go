package global

import (
	"sync"

	"winblur/pkg/config"
	"winblur/pkg/logger"
)

var (
	cfg      *config.Config
	log      *logger.Logger
	initOnce sync.Once
	mu       sync.RWMutex
)

func InitGlobals(config *config.Config, logger *logger.Logger) {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		cfg = config
		log = logger
	})
}

// GetConfig returns the global config instance
func GetConfig() *config.Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetLogger returns the global logger instance, or a no-op logger before
// InitGlobals has run.
func GetLogger() *logger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return logger.Nop()
	}
	return log
}

// GetAll returns all global instances at once.
func GetAll() (*config.Config, *logger.Logger) {
	return GetConfig(), GetLogger()
}
