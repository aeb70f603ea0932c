package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/domain/nav"
)

func newTestRouter(t *testing.T, sessions *stubSessionService) http.Handler {
	t.Helper()
	router := NewRouter(RouterServices{
		Auth:     sessions,
		Catalog:  &stubUpstream{},
		Students: &stubUpstream{},
		Teachers: &stubUpstream{},
		Admins:   &stubUpstream{},
		Reports:  &stubReports{},
	})
	require.NotNil(t, router)
	return router
}

func browserGet(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// Every sidebar entry must resolve to a page its role can actually open.
func TestNavEntriesAreServedForTheirRole(t *testing.T) {
	roles := []domainauth.Role{domainauth.RoleStudent, domainauth.RoleTeacher, domainauth.RoleAdmin}
	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			sessions := newStubSessionService(testSession("s-"+string(role), role))
			router := newTestRouter(t, sessions)
			cookie := &http.Cookie{Name: SessionCookieName, Value: "s-" + string(role)}

			for _, entry := range nav.EntriesForRole(role) {
				w := browserGet(router, entry.Path, cookie)
				assert.Equal(t, http.StatusOK, w.Code, "nav entry %s (%s)", entry.Path, entry.Label)
			}
		})
	}
}

func TestNavEntriesRedirectAnonymousVisitors(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	roles := []domainauth.Role{domainauth.RoleStudent, domainauth.RoleTeacher, domainauth.RoleAdmin}
	for _, role := range roles {
		for _, entry := range nav.EntriesForRole(role) {
			w := browserGet(router, entry.Path)
			assert.Equal(t, http.StatusSeeOther, w.Code, "nav entry %s", entry.Path)
			loc, err := url.Parse(w.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, "/", loc.Path)
			assert.Equal(t, entry.Path, loc.Query().Get("redirect"))
		}
	}
}

func TestRolesCannotCrossAreas(t *testing.T) {
	sessions := newStubSessionService(testSession("s-student", domainauth.RoleStudent))
	router := newTestRouter(t, sessions)
	cookie := &http.Cookie{Name: SessionCookieName, Value: "s-student"}

	for _, path := range []string{"/teacher/dashboard", "/admin/dashboard", "/admin/students"} {
		w := browserGet(router, path, cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code, "path %s", path)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/", loc.Path)
	}
}

func TestLoginPageServedAtRoot(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	w := browserGet(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign in to Learnix")
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	w := browserGet(router, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestUnknownPathReturnsJSONForAPIClients(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	r := httptest.NewRequest(http.MethodGet, "/api/no-such-resource", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStaticAssetsServed(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	w := browserGet(router, "/static/css/styles.css")
	assert.Equal(t, http.StatusOK, w.Code)
}

// Page POST actions behind the guard should always answer with a redirect so
// a browser refresh never replays the form.
func TestFormActionsRedirectAfterPost(t *testing.T) {
	tests := []struct {
		role domainauth.Role
		path string
	}{
		{domainauth.RoleStudent, "/student/help"},
		{domainauth.RoleStudent, "/student/myprofile"},
		{domainauth.RoleTeacher, "/teacher/attendance"},
		{domainauth.RoleTeacher, "/teacher/grading"},
		{domainauth.RoleTeacher, "/teacher/announcements"},
		{domainauth.RoleAdmin, "/admin/teachers"},
		{domainauth.RoleAdmin, "/admin/upcoming-events"},
		{domainauth.RoleAdmin, "/admin/students/5/delete"},
		{domainauth.RoleAdmin, "/admin/pending-admissions/5/approve"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s %s", tc.role, tc.path), func(t *testing.T) {
			id := "s-" + string(tc.role)
			sessions := newStubSessionService(testSession(id, tc.role))
			router := newTestRouter(t, sessions)

			r := httptest.NewRequest(http.MethodPost, tc.path, nil)
			r.Header.Set("Accept", "text/html")
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, http.StatusSeeOther, w.Code)
		})
	}
}
