package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/domain/model"
)

// slowUpstream staggers its answers so a page's widget fetches genuinely
// overlap instead of completing in spawn order.
type slowUpstream struct {
	stubUpstream
}

func (u *slowUpstream) pause() { time.Sleep(time.Millisecond) }

func (u *slowUpstream) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	u.pause()
	return u.stubUpstream.GetCourse(ctx, id)
}

func (u *slowUpstream) GetCourseContents(ctx context.Context, id int64) ([]model.CourseContent, error) {
	u.pause()
	return u.stubUpstream.GetCourseContents(ctx, id)
}

func (u *slowUpstream) MyCourses(ctx context.Context) ([]model.Enrollment, error) {
	u.pause()
	return u.stubUpstream.MyCourses(ctx)
}

func (u *slowUpstream) StudentAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	u.pause()
	return u.stubUpstream.StudentAttendance(ctx)
}

func (u *slowUpstream) StudentAttendanceSummary(ctx context.Context) (*model.AttendanceSummary, error) {
	u.pause()
	return u.stubUpstream.StudentAttendanceSummary(ctx)
}

func (u *slowUpstream) PendingPaymentCount(ctx context.Context) (int, error) {
	u.pause()
	return u.stubUpstream.PendingPaymentCount(ctx)
}

func (u *slowUpstream) StudentAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	u.pause()
	return u.stubUpstream.StudentAnnouncements(ctx)
}

func (u *slowUpstream) StudentTests(ctx context.Context) ([]model.OnlineTest, error) {
	u.pause()
	return u.stubUpstream.StudentTests(ctx)
}

func (u *slowUpstream) StudentTestResults(ctx context.Context) ([]model.TestResult, error) {
	u.pause()
	return u.stubUpstream.StudentTestResults(ctx)
}

func (u *slowUpstream) TeacherDashboard(ctx context.Context) (*model.TeacherDashboard, error) {
	u.pause()
	return u.stubUpstream.TeacherDashboard(ctx)
}

func (u *slowUpstream) TeacherAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	u.pause()
	return u.stubUpstream.TeacherAnnouncements(ctx)
}

func (u *slowUpstream) TeacherSubjects(ctx context.Context) ([]model.Course, error) {
	u.pause()
	return u.stubUpstream.TeacherSubjects(ctx)
}

func (u *slowUpstream) TeacherStudents(ctx context.Context) ([]model.User, error) {
	u.pause()
	return u.stubUpstream.TeacherStudents(ctx)
}

func (u *slowUpstream) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	u.pause()
	return u.stubUpstream.AdminStats(ctx)
}

func (u *slowUpstream) RecentAdmissions(ctx context.Context) ([]model.PendingAdmission, error) {
	u.pause()
	return u.stubUpstream.RecentAdmissions(ctx)
}

func (u *slowUpstream) TopPerformers(ctx context.Context) ([]model.TopPerformer, error) {
	u.pause()
	return u.stubUpstream.TopPerformers(ctx)
}

// Pages that fetch several widgets at once must collect every result
// before touching the shared template data. Overlapping fetches against
// a stub that answers out of step with the goroutine order keep this
// honest under the race detector.
func TestWidgetPagesAssembleOverlappingFetches(t *testing.T) {
	sessions := newStubSessionService(
		testSession("s-student", domainauth.RoleStudent),
		testSession("s-teacher", domainauth.RoleTeacher),
		testSession("s-admin", domainauth.RoleAdmin),
	)
	upstream := &slowUpstream{}
	router := NewRouter(RouterServices{
		Auth:     sessions,
		Catalog:  upstream,
		Students: upstream,
		Teachers: upstream,
		Admins:   upstream,
		Reports:  &stubReports{},
	})
	require.NotNil(t, router)

	pages := []struct {
		session string
		path    string
	}{
		{"s-student", "/student/dashboard"},
		{"s-student", "/student/courses/1"},
		{"s-student", "/student/attendance"},
		{"s-student", "/student/tests"},
		{"s-teacher", "/teacher/dashboard"},
		{"s-teacher", "/teacher/attendance"},
		{"s-teacher", "/teacher/grading"},
		{"s-admin", "/admin/dashboard"},
	}
	for _, page := range pages {
		t.Run(page.path, func(t *testing.T) {
			cookie := &http.Cookie{Name: SessionCookieName, Value: page.session}
			w := browserGet(router, page.path, cookie)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
