package learnix

import (
	"context"
	"net/http"
)

// tokenKey is an unexported context key type to avoid collisions across packages.
type tokenKey struct{}

// WithToken returns a child context carrying the session's bearer credential.
// HTTP middleware sets it once per portal request; every upstream call made
// with that context is then sent authenticated.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer credential from context and a boolean
// indicating presence.
func TokenFromContext(ctx context.Context) (string, bool) {
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		return token, true
	}
	return "", false
}

// BearerTransport attaches the session credential to every outgoing backend
// request. With no credential in the request context the request passes
// through unchanged; the backend decides whether anonymous access is
// acceptable for the endpoint.
type BearerTransport struct {
	// Base is the underlying round tripper; http.DefaultTransport when nil.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper. The incoming request is never
// mutated; when a credential is present the request is cloned with the
// Authorization header set.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := TokenFromContext(req.Context())
	if !ok {
		return t.base().RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base().RoundTrip(clone)
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
