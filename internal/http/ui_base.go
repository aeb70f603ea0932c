package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/learnix/learnix-portal/internal/adapters/learnix"
	"github.com/learnix/learnix-portal/internal/domain/model"
)

// CourseCatalog is a minimal interface for the shared course pages.
type CourseCatalog interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id int64) (*model.Course, error)
	GetCourseContents(ctx context.Context, id int64) ([]model.CourseContent, error)
}

// StudentAPI is a minimal interface for the student area pages.
type StudentAPI interface {
	StudentProfile(ctx context.Context) (*model.User, error)
	UpdateStudentProfile(ctx context.Context, u model.User) (*model.User, error)
	MyCourses(ctx context.Context) ([]model.Enrollment, error)
	StudentAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
	StudentAttendanceSummary(ctx context.Context) (*model.AttendanceSummary, error)
	StudentGrades(ctx context.Context) ([]model.Grade, error)
	StudentPayments(ctx context.Context) ([]model.Payment, error)
	PendingPaymentCount(ctx context.Context) (int, error)
	StudentTests(ctx context.Context) ([]model.OnlineTest, error)
	StudentTestResults(ctx context.Context) ([]model.TestResult, error)
	SubmitTest(ctx context.Context, testID int64, sub model.TestSubmission) (*model.TestResult, error)
	StudentAnnouncements(ctx context.Context) ([]model.Announcement, error)
	StudentHelpTickets(ctx context.Context) ([]model.HelpTicket, error)
	CreateHelpTicket(ctx context.Context, subject, message string) error
}

// TeacherAPI is a minimal interface for the teacher area pages.
type TeacherAPI interface {
	TeacherDashboard(ctx context.Context) (*model.TeacherDashboard, error)
	TeacherStudents(ctx context.Context) ([]model.User, error)
	TeacherStudentProfile(ctx context.Context, studentID int64) (*model.User, error)
	TeacherSubjects(ctx context.Context) ([]model.Course, error)
	MarkAttendance(ctx context.Context, mark model.AttendanceMark) error
	AssignGrade(ctx context.Context, g model.GradeAssignment) error
	TeacherAnnouncements(ctx context.Context) ([]model.Announcement, error)
	PostAnnouncement(ctx context.Context, a model.Announcement) error
	TeacherTests(ctx context.Context) ([]model.OnlineTest, error)
	CreateTest(ctx context.Context, t model.OnlineTest) error
	TestSubmissions(ctx context.Context, testID int64) ([]model.TestResult, error)
}

// AdminAPI is a minimal interface for the admin area pages.
type AdminAPI interface {
	AdminStats(ctx context.Context) (*model.AdminStats, error)
	AdminStudents(ctx context.Context) ([]model.User, error)
	AdminTeachers(ctx context.Context) ([]model.User, error)
	AdminPayments(ctx context.Context) ([]model.Payment, error)
	PendingAdmissions(ctx context.Context) ([]model.PendingAdmission, error)
	RecentAdmissions(ctx context.Context) ([]model.PendingAdmission, error)
	ApproveAdmission(ctx context.Context, id int64) error
	TopPerformers(ctx context.Context) ([]model.TopPerformer, error)
	AdminEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, e model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	DeleteStudent(ctx context.Context, id int64) error
	CreateTeacher(ctx context.Context, name, email, password string) error
	DeleteTeacher(ctx context.Context, id int64) error
	AdminHelpTickets(ctx context.Context) ([]model.HelpTicket, error)
	OnlineTestReports(ctx context.Context) ([]model.TestResult, error)
	ReportsAnalytics(ctx context.Context) (json.RawMessage, error)
}

// Compile-time interface assertions to ensure the upstream client satisfies
// its UI interfaces.
var (
	_ CourseCatalog = (*learnix.Client)(nil)
	_ StudentAPI    = (*learnix.Client)(nil)
	_ TeacherAPI    = (*learnix.Client)(nil)
	_ AdminAPI      = (*learnix.Client)(nil)
)

// ReportExtractor evaluates the configured report metrics against the
// backend analytics document.
type ReportExtractor interface {
	Extract(ctx context.Context) (map[string]any, error)
	MetricNames() []string
}

// SessionTerminator clears a server-side session. Used when the backend
// rejects the session's credential mid-flight.
type SessionTerminator interface {
	Logout(ctx context.Context, sessionID string) error
}

// UIHandlers serves the authenticated portal pages.
type UIHandlers struct {
	T            *TemplateRenderer
	Catalog      CourseCatalog
	Students     StudentAPI
	Teachers     TeacherAPI
	Admins       AdminAPI
	Reports      ReportExtractor
	Sessions     SessionTerminator
	CookieDomain string
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
// A credential the backend no longer accepts ends the session: the stale
// cookie would otherwise keep bouncing the visitor off half-broken pages.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			if errors.Is(err, learnix.ErrUnauthorized) {
				h.endSession(w, r)
				return
			}
			h.logger().WarnContext(r.Context(), "page data load failed",
				"page", spec.Meta.CurrentPage,
				"error", err)
			markPageError(data)
		}
	}
	h.renderPage(w, r, data)
}

// renderPage renders a full portal page.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "template rendering failed",
			"error", err,
			"path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// endSession discards the local session and returns the visitor to the
// login page.
func (h *UIHandlers) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && h.Sessions != nil {
		if logoutErr := h.Sessions.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "session cleanup failed", "error", logoutErr)
		}
	}
	clearCookie(w, r, SessionCookieName, h.CookieDomain)
	redirectToLogin(w, r)
}

// profileFromSession fills the profile page from the session identity. Used
// for roles the backend has no profile endpoint for.
func (h *UIHandlers) profileFromSession(ctx context.Context, data map[string]any) error {
	session := CurrentSession(ctx)
	if session.IsAnonymous() {
		return nil
	}
	data["Profile"] = &model.User{
		ID:    session.Identity.ID,
		Name:  session.Identity.Name,
		Email: session.Identity.Email,
		Role:  string(session.Identity.Role),
	}
	return nil
}

// pathID parses the route's {id} segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
