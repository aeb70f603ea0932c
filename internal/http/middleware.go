package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/learnix/learnix-portal/internal/adapters/learnix"
	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

// SessionReader restores sessions from cookie values. Restore failures come
// back as the anonymous session, never as an error.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) domainauth.Session
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth returns a middleware that attaches session information when a
// valid session cookie is present and continues anonymously otherwise. The
// session's bearer credential is also attached to the request context so
// every upstream call made by the handler is sent authenticated.
func OptionalAuth(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromRequest(r, sessions)
			if !session.IsAnonymous() {
				r = r.WithContext(attachSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns the route guard middleware for a protected route.
// Anonymous visitors and sessions with a different role never reach the
// handler: browser requests are sent back to the login page, API requests
// get 401/403 JSON responses.
func RequireRole(sessions SessionReader, required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromRequest(r, sessions)
			if session.IsAnonymous() {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !session.HasRole(required) {
				if IsBrowserRequest(r) {
					// A signed-in user on another role's page lands
					// back at the entry point, same as the original
					// client-side guard.
					redirectToLogin(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(attachSession(r.Context(), session)))
		})
	}
}

// attachSession stores the session for handlers and the bearer credential
// for the upstream client transport.
func attachSession(ctx context.Context, session domainauth.Session) context.Context {
	ctx = SetSessionInContext(ctx, session)
	return learnix.WithToken(ctx, session.Token)
}

// sessionFromRequest restores the session named by the request's cookie.
func sessionFromRequest(r *http.Request, sessions SessionReader) domainauth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return domainauth.Anonymous()
	}
	return sessions.GetSession(r.Context(), cookie.Value)
}

// redirectToLogin sends browser requests to the login page, carrying the
// attempted path so a successful sign-in can return there.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target = "/?redirect=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// browserRequestKey is an unexported context key type for browser request
// detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that classifies requests as browser
// or API so downstream guards can choose between redirects and JSON errors.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := setBrowserRequest(r.Context(), isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setBrowserRequest(ctx context.Context, isBrowser bool) context.Context {
	return context.WithValue(ctx, browserRequestKey{}, isBrowser)
}

// IsBrowserRequest reports whether the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used.
	return isBrowserRequest(r)
}

// isBrowserRequest classifies a request by path and Accept header. The
// portal's own JSON endpoints live under /auth/status and /healthz; pages
// are everything else.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes.
		return true
	}
	return strings.Contains(accept, "text/html")
}
