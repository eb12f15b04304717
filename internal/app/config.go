package app

import (
	"cyspec/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Run holds the resolved action inputs.
	Run config.RunConfig
}

// NewConfig creates a new application configuration
func NewConfig(run config.RunConfig) *Config {
	return &Config{
		Run: run,
	}
}
