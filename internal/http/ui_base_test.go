package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnix/learnix-portal/internal/adapters/learnix"
	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

func newTestRouterWithUpstream(t *testing.T, sessions *stubSessionService, upstream *stubUpstream) http.Handler {
	t.Helper()
	router := NewRouter(RouterServices{
		Auth:     sessions,
		Catalog:  upstream,
		Students: upstream,
		Teachers: upstream,
		Admins:   upstream,
		Reports:  &stubReports{},
	})
	require.NotNil(t, router)
	return router
}

// A credential the backend no longer accepts must end the portal session
// instead of leaving the visitor stuck behind a stale cookie.
func TestPageEndsSessionWhenBackendRejectsCredential(t *testing.T) {
	sessions := newStubSessionService(testSession("s1", domainauth.RoleStudent))
	upstream := &stubUpstream{err: fmt.Errorf("GET /api/student/dashboard: %w", learnix.ErrUnauthorized)}
	router := newTestRouterWithUpstream(t, sessions, upstream)

	w := browserGet(router, "/student/dashboard", &http.Cookie{Name: SessionCookieName, Value: "s1"})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?redirect=%2Fstudent%2Fdashboard", w.Header().Get("Location"))
	assert.Equal(t, []string{"s1"}, sessions.loggedOut)

	cookie := sessionCookie(t, w, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

// Other backend failures keep the session and render the page with a load
// failure banner instead of a blank error.
func TestPageShowsLoadFailureBannerOnBackendError(t *testing.T) {
	sessions := newStubSessionService(testSession("s1", domainauth.RoleStudent))
	upstream := &stubUpstream{err: errors.New("backend unavailable")}
	router := newTestRouterWithUpstream(t, sessions, upstream)

	w := browserGet(router, "/student/marks", &http.Cookie{Name: SessionCookieName, Value: "s1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "could not be loaded")
	assert.Empty(t, sessions.loggedOut)
	assert.Nil(t, sessionCookie(t, w, SessionCookieName))
}

func TestPageRendersSidebarForSession(t *testing.T) {
	sessions := newStubSessionService(testSession("s1", domainauth.RoleStudent))
	router := newTestRouterWithUpstream(t, sessions, &stubUpstream{})

	w := browserGet(router, "/student/dashboard", &http.Cookie{Name: SessionCookieName, Value: "s1"})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Test User")
	assert.Contains(t, body, `href="/student/my-courses"`)
	assert.NotContains(t, body, `href="/admin/`)
}

func TestNonNumericPathIDIsNotFound(t *testing.T) {
	sessions := newStubSessionService(testSession("s1", domainauth.RoleStudent))
	router := newTestRouterWithUpstream(t, sessions, &stubUpstream{})

	for _, path := range []string{"/student/courses/abc", "/student/courses/0", "/student/courses/-3"} {
		w := browserGet(router, path, &http.Cookie{Name: SessionCookieName, Value: "s1"})
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
	}
}
