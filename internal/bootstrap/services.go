package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/learnix/learnix-portal/config"
	"github.com/learnix/learnix-portal/internal/adapters/googleauth"
	"github.com/learnix/learnix-portal/internal/adapters/learnix"
	"github.com/learnix/learnix-portal/internal/adapters/memstore"
	redisstore "github.com/learnix/learnix-portal/internal/adapters/redis"
	"github.com/learnix/learnix-portal/internal/adapters/tokenclaims"
	"github.com/learnix/learnix-portal/internal/ports"
	"github.com/learnix/learnix-portal/internal/service"
)

// ServiceContainer holds the portal's wired services.
type ServiceContainer struct {
	Upstream *learnix.Client
	Auth     *service.AuthService
	Reports  *service.ReportsService
	// Google is nil when Google sign-in is not configured.
	Google ports.GoogleExchanger
	// RedisClient is nil when the in-memory session store is in use.
	RedisClient goredis.UniversalClient
}

// Close releases held connections.
func (s *ServiceContainer) Close() error {
	if s.RedisClient != nil {
		return s.RedisClient.Close()
	}
	return nil
}

// BuildServices wires adapters and services from configuration.
func BuildServices(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*ServiceContainer, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	upstream, err := learnix.NewClient(learnix.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build upstream client: %w", err)
	}

	sessions, redisClient, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Backend:    upstream,
		Sessions:   sessions,
		Decoder:    tokenclaims.NewDecoder(),
		SessionTTL: cfg.Session.TTL,
		Logger:     logger,
	})

	reports, err := service.NewReportsService(service.ReportsServiceOptions{
		Fetcher: upstream,
	})
	if err != nil {
		return nil, fmt.Errorf("build reports service: %w", err)
	}

	google, err := buildGoogleProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		Upstream:    upstream,
		Auth:        auth,
		Reports:     reports,
		Google:      google,
		RedisClient: redisClient,
	}, nil
}

// buildSessionStore connects Redis when configured and falls back to the
// in-memory store otherwise. The fallback loses sessions on restart, so it
// logs loudly outside dev mode.
func buildSessionStore(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (ports.SessionStore, goredis.UniversalClient, error) {
	if cfg.Redis.Addr == "" {
		if cfg.IsDev {
			logger.Info("using in-memory session store", "reason", "REDIS_ADDR not set")
		} else {
			logger.Warn("using in-memory session store in production mode; sessions will not survive restarts",
				"reason", "REDIS_ADDR not set")
		}
		return memstore.NewSessionStore(), nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis connected", "addr", cfg.Redis.Addr)
	return redisstore.NewSessionStore(client), client, nil
}

// buildGoogleProvider constructs the Google sign-in provider, or nil when
// not configured.
func buildGoogleProvider(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (ports.GoogleExchanger, error) {
	if !cfg.Google.Enabled() {
		logger.Info("google sign-in disabled", "reason", "GOOGLE_CLIENT_ID not set")
		return nil, nil
	}

	provider, err := googleauth.NewProvider(ctx, googleauth.ProviderConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  GoogleRedirectURL(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("build google provider: %w", err)
	}
	return provider, nil
}

// GoogleRedirectURL derives the absolute OAuth callback URL.
func GoogleRedirectURL(cfg *config.AppConfig) string {
	base := strings.TrimRight(cfg.HTTP.BaseURL, "/")
	return base + cfg.Google.RedirectPath
}
