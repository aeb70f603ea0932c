package httpx

import (
	"context"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across
// packages. Centralized here so all handlers and middleware share it.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the given session.
// Anonymous sessions are not stored; the absence of a value means anonymous.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	if session.IsAnonymous() {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session from context and a boolean
// indicating presence.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(domainauth.Session); ok {
		return session, true
	}
	return domainauth.Anonymous(), false
}

// CurrentSession returns the session from the request context, anonymous
// when none was attached.
func CurrentSession(ctx context.Context) domainauth.Session {
	session, _ := SessionFromContext(ctx)
	return session
}
