package config

import (
	"strings"
	"time"
)

// UpstreamConfig contains the Learnix backend API configuration.
type UpstreamConfig struct {
	// BaseURL is the root of the backend API, without a trailing slash.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000"`

	// Timeout bounds every upstream request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.Timeout <= 0 {
		u.Timeout = 15 * time.Second
	}
}
