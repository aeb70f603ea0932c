package googleauth

// Package googleauth runs the portal side of the Google sign-in code flow.
// The verified ID token is not used to establish a session directly; it is
// forwarded to the Learnix backend, which owns the account and issues the
// bearer token the portal actually stores.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/learnix/learnix-portal/internal/ports"
)

const googleIssuer = "https://accounts.google.com"

// Provider implements ports.GoogleExchanger against Google's OIDC endpoints.
type Provider struct {
	config   *oauth2.Config
	verifier *gooidc.IDTokenVerifier
}

// ProviderConfig holds construction parameters for the Google provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Issuer overrides the Google issuer URL; tests point it at a local
	// discovery server.
	Issuer     string
	HTTPClient *http.Client
}

// NewProvider discovers Google's OIDC endpoints and builds the provider.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = googleIssuer
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{gooidc.ScopeOpenID, "profile", "email"},
			Endpoint:     op.Endpoint(),
		},
		verifier: op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

var _ ports.GoogleExchanger = (*Provider)(nil)

// Begin returns the Google consent URL and the state value the callback
// handler must match against.
func (p *Provider) Begin(_ context.Context, redirectURL string) (string, string, error) {
	if redirectURL == "" {
		return "", "", errors.New("redirect URL is required")
	}

	state, err := randomString(32)
	if err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}

	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, state, nil
}

// Exchange turns a callback code into a verified Google ID token.
func (p *Provider) Exchange(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", errors.New("authorization code is required")
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return "", errors.New("token response carried no id_token")
	}
	if _, err := p.verifier.Verify(ctx, rawID); err != nil {
		return "", fmt.Errorf("verify id_token: %w", err)
	}
	return rawID, nil
}

func randomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
