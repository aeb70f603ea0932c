package googleauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDiscoveryServer serves a minimal OIDC discovery document pointing back
// at itself.
func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		doc := map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/auth",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	srv := newDiscoveryServer(t)

	provider, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "portal-client",
		ClientSecret: "portal-secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		Issuer:       srv.URL,
	})
	require.NoError(t, err)
	return provider
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name:   "missing client ID",
			config: ProviderConfig{ClientSecret: "s", RedirectURL: "http://localhost/cb"},
			errMsg: "client ID is required",
		},
		{
			name:   "missing client secret",
			config: ProviderConfig{ClientID: "c", RedirectURL: "http://localhost/cb"},
			errMsg: "client secret is required",
		},
		{
			name:   "missing redirect URL",
			config: ProviderConfig{ClientID: "c", ClientSecret: "s"},
			errMsg: "redirect URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(context.Background(), tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBegin_BuildsConsentURL(t *testing.T) {
	provider := newTestProvider(t)

	authURL, state, err := provider.Begin(context.Background(), "http://localhost:8080/auth/google/callback")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "portal-client", q.Get("client_id"))
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Contains(t, q.Get("scope"), "email")
	assert.Equal(t, "select_account", q.Get("prompt"))
}

func TestBegin_StateIsUnpredictable(t *testing.T) {
	provider := newTestProvider(t)

	_, first, err := provider.Begin(context.Background(), "http://localhost/cb")
	require.NoError(t, err)
	_, second, err := provider.Begin(context.Background(), "http://localhost/cb")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBegin_RequiresRedirectURL(t *testing.T) {
	provider := newTestProvider(t)

	_, _, err := provider.Begin(context.Background(), "")
	assert.Error(t, err)
}

func TestExchange_RequiresCode(t *testing.T) {
	provider := newTestProvider(t)

	_, err := provider.Exchange(context.Background(), "")
	assert.Error(t, err)
}
