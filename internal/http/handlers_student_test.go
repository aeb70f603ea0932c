package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

func postStudentProfile(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/student/myprofile", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "text/html")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// Saving the profile form pushes the edited fields to the backend keyed by
// the session identity, then returns to the profile page.
func TestStudentProfileSubmitUpdatesBackend(t *testing.T) {
	sessions := newStubSessionService(testSession("s1", domainauth.RoleStudent))
	upstream := &stubUpstream{}
	router := newTestRouterWithUpstream(t, sessions, upstream)

	w := postStudentProfile(router, url.Values{
		"name":  {"Avery Quinn"},
		"phone": {"555-0142"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/student/myprofile", w.Header().Get("Location"))

	require.Len(t, upstream.updatedProfiles, 1)
	got := upstream.updatedProfiles[0]
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Avery Quinn", got.Name)
	assert.Equal(t, "555-0142", got.Phone)
	assert.Equal(t, "user@learnix.test", got.Email)
}

func TestStudentProfileSubmitRequiresName(t *testing.T) {
	sessions := newStubSessionService(testSession("s1", domainauth.RoleStudent))
	upstream := &stubUpstream{}
	router := newTestRouterWithUpstream(t, sessions, upstream)

	w := postStudentProfile(router, url.Values{"name": {"   "}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, upstream.updatedProfiles)
}
