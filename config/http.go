package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public URL of the dashboard, used for links in ops alerts.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// StaticDir serves a built dashboard when set. Role-gated page prefixes apply.
	StaticDir string `env:"HTTP_STATIC_DIR"`

	// CORSOrigin is returned in Access-Control-Allow-Origin for the trigger endpoint.
	CORSOrigin string `env:"HTTP_CORS_ORIGIN" envDefault:"*"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	h.StaticDir = strings.TrimSpace(h.StaticDir)
	if h.CORSOrigin = strings.TrimSpace(h.CORSOrigin); h.CORSOrigin == "" {
		h.CORSOrigin = "*"
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 15 * time.Second
	}
}
