package httpx

// CurrentPage constants identify pages for templates and navigation state.
const (
	PageLogin          = "login"
	PageRegister       = "register"
	PageForgotPassword = "forgot-password"
	PageResetPassword  = "reset-password"

	// Student pages.
	PageStudentDashboard     = "student-dashboard"
	PageStudentCourses       = "student-courses"
	PageStudentCourseDetail  = "student-course-detail"
	PageStudentMyCourses     = "student-my-courses"
	PageStudentAttendance    = "student-attendance"
	PageStudentMarks         = "student-marks"
	PageStudentPayments      = "student-payments"
	PageStudentProfile       = "student-profile"
	PageStudentHelp          = "student-help"
	PageStudentTests         = "student-tests"
	PageStudentNotifications = "student-notifications"

	// Teacher pages.
	PageTeacherDashboard     = "teacher-dashboard"
	PageTeacherCourses       = "teacher-courses"
	PageTeacherAnnouncements = "teacher-announcements"
	PageTeacherGrading       = "teacher-grading"
	PageTeacherStudents      = "teacher-students"
	PageTeacherStudentDetail = "teacher-student-detail"
	PageTeacherAttendance    = "teacher-attendance"
	PageTeacherTests         = "teacher-tests"
	PageTeacherProfile       = "teacher-profile"

	// Admin pages.
	PageAdminDashboard   = "admin-dashboard"
	PageAdminStudents    = "admin-students"
	PageAdminTeachers    = "admin-teachers"
	PageAdminCourses     = "admin-courses"
	PageAdminReports     = "admin-reports"
	PageAdminAnalytics   = "admin-analytics"
	PageAdminEvents      = "admin-events"
	PageAdminAdmissions  = "admin-admissions"
	PageAdminPayments    = "admin-payments"
	PageAdminProfile     = "admin-profile"
	PageAdminHelp        = "admin-help"
	PageAdminTestReports = "admin-test-reports"
)

// Cookie names used by the auth handlers and middleware.
const (
	SessionCookieName    = "session_id"
	oauthStateCookieName = "oauth_state"
	oauthCookieMaxAge    = 600
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:          "login-content",
	PageRegister:       "register-content",
	PageForgotPassword: "forgot-password-content",
	PageResetPassword:  "reset-password-content",

	PageStudentDashboard:     "student-dashboard-content",
	PageStudentCourses:       "course-list-content",
	PageStudentCourseDetail:  "course-detail-content",
	PageStudentMyCourses:     "my-courses-content",
	PageStudentAttendance:    "attendance-content",
	PageStudentMarks:         "marks-content",
	PageStudentPayments:      "payments-content",
	PageStudentProfile:       "profile-content",
	PageStudentHelp:          "help-content",
	PageStudentTests:         "tests-content",
	PageStudentNotifications: "notifications-content",

	PageTeacherDashboard:     "teacher-dashboard-content",
	PageTeacherCourses:       "course-list-content",
	PageTeacherAnnouncements: "announcements-content",
	PageTeacherGrading:       "grading-content",
	PageTeacherStudents:      "student-list-content",
	PageTeacherStudentDetail: "profile-content",
	PageTeacherAttendance:    "attendance-mark-content",
	PageTeacherTests:         "tests-content",
	PageTeacherProfile:       "profile-content",

	PageAdminDashboard:   "admin-dashboard-content",
	PageAdminStudents:    "student-list-content",
	PageAdminTeachers:    "teacher-list-content",
	PageAdminCourses:     "course-list-content",
	PageAdminReports:     "reports-content",
	PageAdminAnalytics:   "reports-content",
	PageAdminEvents:      "events-content",
	PageAdminAdmissions:  "admissions-content",
	PageAdminPayments:    "payments-content",
	PageAdminProfile:     "profile-content",
	PageAdminHelp:        "help-content",
	PageAdminTestReports: "test-results-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the login page.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "login-content"
}
