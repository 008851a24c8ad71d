package api

import (
	"fmt"
	"html/template"

	"github.com/rs/zerolog"

	"github.com/mihaimyh/storebark/pkg/appconfig"
	"github.com/mihaimyh/storebark/pkg/storebark"
)

const defaultMaxBodyBytes = 256 * 1024

// Config holds configuration for the HTTP handler.
type Config struct {
	// Pipeline processes inbound webhook deliveries (required).
	Pipeline *storebark.Pipeline

	// Apps is the resolved tenant registry (required).
	Apps *appconfig.Registry

	// Logger receives request-level logs.
	Logger zerolog.Logger

	// MaxBodyBytes caps the inbound request body. Defaults to 256KB, a safe
	// upper bound for App Store notification payloads.
	MaxBodyBytes int64
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Pipeline == nil {
		return fmt.Errorf("pipeline is required")
	}
	if c.Apps == nil {
		return fmt.Errorf("app registry is required")
	}
	return nil
}

// NewHandler creates the HTTP handler with the given configuration.
func NewHandler(config Config) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{config: config, tmpl: tmpl}, nil
}
