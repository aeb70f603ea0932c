package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/domain/model"
	"github.com/learnix/learnix-portal/internal/ports"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the
// test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// testSession builds an authenticated session for the given role.
func testSession(id string, role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		ID:    id,
		Token: "token-" + id,
		Identity: &domainauth.Identity{
			ID:    7,
			Name:  "Test User",
			Email: "user@learnix.test",
			Role:  role,
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// stubSessionService implements AuthServiceInterface with canned sessions.
type stubSessionService struct {
	sessions    map[string]domainauth.Session
	loggedOut   []string
	loginResult domainauth.Session
	loginErr    error
}

func newStubSessionService(sessions ...domainauth.Session) *stubSessionService {
	m := make(map[string]domainauth.Session, len(sessions))
	for _, s := range sessions {
		m[s.ID] = s
	}
	return &stubSessionService{sessions: m}
}

func (s *stubSessionService) Login(_ context.Context, email, _ string) (domainauth.Session, error) {
	if s.loginErr != nil {
		return domainauth.Anonymous(), s.loginErr
	}
	if s.loginResult.ID != "" {
		return s.loginResult, nil
	}
	return domainauth.Anonymous(), errors.New("no login configured for " + email)
}

func (s *stubSessionService) LoginWithGoogle(_ context.Context, _ string) (domainauth.Session, error) {
	if s.loginErr != nil {
		return domainauth.Anonymous(), s.loginErr
	}
	if s.loginResult.ID != "" {
		return s.loginResult, nil
	}
	return domainauth.Anonymous(), errors.New("no login configured")
}

func (s *stubSessionService) GetSession(_ context.Context, sessionID string) domainauth.Session {
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	return domainauth.Anonymous()
}

func (s *stubSessionService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	delete(s.sessions, sessionID)
	return nil
}

func (s *stubSessionService) Register(context.Context, ports.RegisterInput) error { return nil }

func (s *stubSessionService) ForgotPassword(context.Context, string) error { return nil }

func (s *stubSessionService) VerifyOTP(context.Context, string, string) error { return nil }

func (s *stubSessionService) ResetPassword(context.Context, ports.ResetPasswordInput) error {
	return nil
}

// stubUpstream implements the page-facing upstream interfaces with empty
// canned data so handlers render without a backend.
type stubUpstream struct {
	err error

	updatedProfiles []model.User
}

func (u *stubUpstream) ListCourses(context.Context) ([]model.Course, error) {
	return []model.Course{}, u.err
}

func (u *stubUpstream) GetCourse(context.Context, int64) (*model.Course, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.Course{ID: 1, Title: "Algebra"}, nil
}

func (u *stubUpstream) GetCourseContents(context.Context, int64) ([]model.CourseContent, error) {
	return []model.CourseContent{}, u.err
}

func (u *stubUpstream) StudentProfile(context.Context) (*model.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.User{ID: 7, Name: "Test User", Email: "user@learnix.test", Role: "STUDENT"}, nil
}

func (u *stubUpstream) UpdateStudentProfile(_ context.Context, user model.User) (*model.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.updatedProfiles = append(u.updatedProfiles, user)
	return &user, nil
}

func (u *stubUpstream) MyCourses(context.Context) ([]model.Enrollment, error) {
	return []model.Enrollment{}, u.err
}

func (u *stubUpstream) StudentAttendance(context.Context) ([]model.AttendanceRecord, error) {
	return []model.AttendanceRecord{}, u.err
}

func (u *stubUpstream) StudentAttendanceSummary(context.Context) (*model.AttendanceSummary, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.AttendanceSummary{}, nil
}

func (u *stubUpstream) StudentGrades(context.Context) ([]model.Grade, error) {
	return []model.Grade{}, u.err
}

func (u *stubUpstream) StudentPayments(context.Context) ([]model.Payment, error) {
	return []model.Payment{}, u.err
}

func (u *stubUpstream) PendingPaymentCount(context.Context) (int, error) { return 0, u.err }

func (u *stubUpstream) StudentTests(context.Context) ([]model.OnlineTest, error) {
	return []model.OnlineTest{}, u.err
}

func (u *stubUpstream) StudentTestResults(context.Context) ([]model.TestResult, error) {
	return []model.TestResult{}, u.err
}

func (u *stubUpstream) SubmitTest(context.Context, int64, model.TestSubmission) (*model.TestResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.TestResult{TestID: 1, Title: "Quiz", Score: 8, MaxScore: 10}, nil
}

func (u *stubUpstream) StudentAnnouncements(context.Context) ([]model.Announcement, error) {
	return []model.Announcement{}, u.err
}

func (u *stubUpstream) StudentHelpTickets(context.Context) ([]model.HelpTicket, error) {
	return []model.HelpTicket{}, u.err
}

func (u *stubUpstream) CreateHelpTicket(context.Context, string, string) error { return u.err }

func (u *stubUpstream) TeacherDashboard(context.Context) (*model.TeacherDashboard, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.TeacherDashboard{}, nil
}

func (u *stubUpstream) TeacherStudents(context.Context) ([]model.User, error) {
	return []model.User{}, u.err
}

func (u *stubUpstream) TeacherStudentProfile(context.Context, int64) (*model.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.User{ID: 9, Name: "Student Nine"}, nil
}

func (u *stubUpstream) TeacherSubjects(context.Context) ([]model.Course, error) {
	return []model.Course{}, u.err
}

func (u *stubUpstream) MarkAttendance(context.Context, model.AttendanceMark) error { return u.err }
func (u *stubUpstream) AssignGrade(context.Context, model.GradeAssignment) error   { return u.err }

func (u *stubUpstream) TeacherAnnouncements(context.Context) ([]model.Announcement, error) {
	return []model.Announcement{}, u.err
}

func (u *stubUpstream) PostAnnouncement(context.Context, model.Announcement) error { return u.err }

func (u *stubUpstream) TeacherTests(context.Context) ([]model.OnlineTest, error) {
	return []model.OnlineTest{}, u.err
}

func (u *stubUpstream) CreateTest(context.Context, model.OnlineTest) error { return u.err }

func (u *stubUpstream) TestSubmissions(context.Context, int64) ([]model.TestResult, error) {
	return []model.TestResult{}, u.err
}

func (u *stubUpstream) AdminStats(context.Context) (*model.AdminStats, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &model.AdminStats{}, nil
}

func (u *stubUpstream) AdminStudents(context.Context) ([]model.User, error) {
	return []model.User{}, u.err
}

func (u *stubUpstream) AdminTeachers(context.Context) ([]model.User, error) {
	return []model.User{}, u.err
}

func (u *stubUpstream) AdminPayments(context.Context) ([]model.Payment, error) {
	return []model.Payment{}, u.err
}

func (u *stubUpstream) PendingAdmissions(context.Context) ([]model.PendingAdmission, error) {
	return []model.PendingAdmission{}, u.err
}

func (u *stubUpstream) RecentAdmissions(context.Context) ([]model.PendingAdmission, error) {
	return []model.PendingAdmission{}, u.err
}

func (u *stubUpstream) ApproveAdmission(context.Context, int64) error { return u.err }

func (u *stubUpstream) TopPerformers(context.Context) ([]model.TopPerformer, error) {
	return []model.TopPerformer{}, u.err
}

func (u *stubUpstream) AdminEvents(context.Context) ([]model.Event, error) {
	return []model.Event{}, u.err
}

func (u *stubUpstream) CreateEvent(context.Context, model.Event) error { return u.err }
func (u *stubUpstream) DeleteEvent(context.Context, int64) error       { return u.err }
func (u *stubUpstream) DeleteStudent(context.Context, int64) error     { return u.err }
func (u *stubUpstream) CreateTeacher(context.Context, string, string, string) error {
	return u.err
}
func (u *stubUpstream) DeleteTeacher(context.Context, int64) error { return u.err }

func (u *stubUpstream) AdminHelpTickets(context.Context) ([]model.HelpTicket, error) {
	return []model.HelpTicket{}, u.err
}

func (u *stubUpstream) OnlineTestReports(context.Context) ([]model.TestResult, error) {
	return []model.TestResult{}, u.err
}

func (u *stubUpstream) ReportsAnalytics(context.Context) (json.RawMessage, error) {
	if u.err != nil {
		return nil, u.err
	}
	return json.RawMessage(`{}`), nil
}

// stubReports implements ReportExtractor with a fixed metric set.
type stubReports struct {
	err error
}

func (s *stubReports) Extract(context.Context) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]any{"total_enrollments": float64(42)}, nil
}

func (s *stubReports) MetricNames() []string { return []string{"total_enrollments"} }

var (
	_ AuthServiceInterface = (*stubSessionService)(nil)
	_ CourseCatalog        = (*stubUpstream)(nil)
	_ StudentAPI           = (*stubUpstream)(nil)
	_ TeacherAPI           = (*stubUpstream)(nil)
	_ AdminAPI             = (*stubUpstream)(nil)
	_ ReportExtractor      = (*stubReports)(nil)
)
