package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/tmaia/bugreport/internal/models"
)

// ServerConfig holds the proxy settings read from the environment.
// The API key is deliberately not required at startup: the proxy checks
// it per request and answers 500 when it is missing.
type ServerConfig struct {
	OpenRouterKey string `env:"OPENROUTER_API_KEY"`
	Host          string `env:"HOST" envDefault:"0.0.0.0"`
	Port          int    `env:"PORT" envDefault:"8080"`
	// SiteURL is sent upstream as the HTTP-Referer attribution header.
	SiteURL string `env:"SITE_URL" envDefault:"https://form-builder-bug-report.vercel.app"`
	// AppTitle is sent upstream as the X-Title attribution header.
	AppTitle string `env:"APP_TITLE" envDefault:"Form Builder Bug Report"`
	// UpstreamURL overrides the completions endpoint (used by tests).
	UpstreamURL string `env:"UPSTREAM_URL"`
}

// LoadServer parses the server configuration from the environment
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}
	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = models.DefaultUpstreamURL
	}
	return cfg, nil
}
