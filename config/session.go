package config

import "time"

// SessionConfig contains session store configuration.
type SessionConfig struct {
	// TTL is the lifetime of a session; the cookie and the stored record
	// expire together.
	TTL time.Duration `env:"TTL" envDefault:"12h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
}

// RedisConfig contains Redis connection configuration for the session store.
// When Addr is empty the portal falls back to the in-memory store, which is
// only suitable for development.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
