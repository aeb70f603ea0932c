package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	learnixportal "github.com/learnix/learnix-portal"
	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     AuthServiceInterface
	Google   ports.GoogleExchanger
	Catalog  CourseCatalog
	Students StudentAPI
	Teachers TeacherAPI
	Admins   AdminAPI
	Reports  ReportExtractor

	CookieDomain      string
	GoogleRedirectURL string
	IsDev             bool         // Development mode flag for disk-backed templates
	Logger            *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		authHandlers := &AuthHandlers{
			Svc:               services.Auth,
			Google:            services.Google,
			T:                 uiHandlers.T,
			CookieDomain:      services.CookieDomain,
			GoogleRedirectURL: services.GoogleRedirectURL,
			Logger:            services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)
		registerStudentRoutes(mux, uiHandlers, services.Auth)
		registerTeacherRoutes(mux, uiHandlers, services.Auth)
		registerAdminRoutes(mux, uiHandlers, services.Auth)
	}

	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}

	return BrowserDetection()(handler)
}

// setupUIHandlers creates UI handlers with a template renderer. In dev mode
// templates load from disk so edits show up without a rebuild; in production
// they come from the embedded filesystem.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(learnixportal.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:            tr,
		Catalog:      services.Catalog,
		Students:     services.Students,
		Teachers:     services.Teachers,
		Admins:       services.Admins,
		Reports:      services.Reports,
		Sessions:     services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
}

// staticHandler serves /static/* assets: from disk in dev mode, from the
// embedded filesystem in production.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}

	staticSub, err := fs.Sub(learnixportal.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /{$}", h.LoginPage)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterPage)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /forgot-password", h.ForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
	mux.HandleFunc("GET /reset-password", h.ResetPasswordPage)
	mux.HandleFunc("POST /reset-password", h.ResetPassword)
	mux.HandleFunc("GET /auth/google", h.GoogleBegin)
	mux.HandleFunc("GET /auth/google/callback", h.GoogleCallback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerStudentRoutes(mux *http.ServeMux, h *UIHandlers, sessions SessionReader) {
	wrap := RequireRole(sessions, domainauth.RoleStudent)
	mux.Handle("GET /student/dashboard", wrap(http.HandlerFunc(h.StudentDashboard)))
	mux.Handle("GET /student/courses", wrap(http.HandlerFunc(h.StudentCourses)))
	mux.Handle("GET /student/courses/{id}", wrap(http.HandlerFunc(h.StudentCourseDetail)))
	mux.Handle("GET /student/my-courses", wrap(http.HandlerFunc(h.StudentMyCourses)))
	mux.Handle("GET /student/attendance", wrap(http.HandlerFunc(h.StudentAttendance)))
	mux.Handle("GET /student/marks", wrap(http.HandlerFunc(h.StudentMarks)))
	mux.Handle("GET /student/payments", wrap(http.HandlerFunc(h.StudentPayments)))
	mux.Handle("GET /student/myprofile", wrap(http.HandlerFunc(h.StudentProfile)))
	mux.Handle("POST /student/myprofile", wrap(http.HandlerFunc(h.StudentProfileSubmit)))
	mux.Handle("GET /student/help", wrap(http.HandlerFunc(h.StudentHelp)))
	mux.Handle("POST /student/help", wrap(http.HandlerFunc(h.StudentHelpSubmit)))
	mux.Handle("GET /student/tests", wrap(http.HandlerFunc(h.StudentTests)))
	mux.Handle("POST /student/tests/{id}", wrap(http.HandlerFunc(h.StudentTestSubmit)))
	mux.Handle("GET /student/notifications", wrap(http.HandlerFunc(h.StudentNotifications)))
}

func registerTeacherRoutes(mux *http.ServeMux, h *UIHandlers, sessions SessionReader) {
	wrap := RequireRole(sessions, domainauth.RoleTeacher)
	mux.Handle("GET /teacher/dashboard", wrap(http.HandlerFunc(h.TeacherDashboard)))
	mux.Handle("GET /teacher/my-courses", wrap(http.HandlerFunc(h.TeacherCourses)))
	mux.Handle("GET /teacher/students", wrap(http.HandlerFunc(h.TeacherStudents)))
	mux.Handle("GET /teacher/students/{id}", wrap(http.HandlerFunc(h.TeacherStudentDetail)))
	mux.Handle("GET /teacher/attendance", wrap(http.HandlerFunc(h.TeacherAttendance)))
	mux.Handle("POST /teacher/attendance", wrap(http.HandlerFunc(h.TeacherAttendanceSubmit)))
	mux.Handle("GET /teacher/grading", wrap(http.HandlerFunc(h.TeacherGrading)))
	mux.Handle("POST /teacher/grading", wrap(http.HandlerFunc(h.TeacherGradingSubmit)))
	mux.Handle("GET /teacher/announcements", wrap(http.HandlerFunc(h.TeacherAnnouncements)))
	mux.Handle("POST /teacher/announcements", wrap(http.HandlerFunc(h.TeacherAnnouncementSubmit)))
	mux.Handle("GET /teacher/tests", wrap(http.HandlerFunc(h.TeacherTests)))
	mux.Handle("POST /teacher/tests", wrap(http.HandlerFunc(h.TeacherTestCreate)))
	mux.Handle("GET /teacher/tests/{id}", wrap(http.HandlerFunc(h.TeacherTestSubmissions)))
	mux.Handle("GET /teacher/myprofile", wrap(http.HandlerFunc(h.TeacherProfile)))
}

func registerAdminRoutes(mux *http.ServeMux, h *UIHandlers, sessions SessionReader) {
	wrap := RequireRole(sessions, domainauth.RoleAdmin)
	mux.Handle("GET /admin/dashboard", wrap(http.HandlerFunc(h.AdminDashboard)))
	mux.Handle("GET /admin/students", wrap(http.HandlerFunc(h.AdminStudents)))
	mux.Handle("POST /admin/students/{id}/delete", wrap(http.HandlerFunc(h.AdminStudentDelete)))
	mux.Handle("GET /admin/teachers", wrap(http.HandlerFunc(h.AdminTeachers)))
	mux.Handle("POST /admin/teachers", wrap(http.HandlerFunc(h.AdminTeacherCreate)))
	mux.Handle("POST /admin/teachers/{id}/delete", wrap(http.HandlerFunc(h.AdminTeacherDelete)))
	mux.Handle("GET /admin/manage-courses", wrap(http.HandlerFunc(h.AdminCourses)))
	mux.Handle("GET /admin/reports", wrap(http.HandlerFunc(h.AdminReports)))
	mux.Handle("GET /admin/analytics", wrap(http.HandlerFunc(h.AdminAnalytics)))
	mux.Handle("GET /admin/upcoming-events", wrap(http.HandlerFunc(h.AdminEvents)))
	mux.Handle("POST /admin/upcoming-events", wrap(http.HandlerFunc(h.AdminEventCreate)))
	mux.Handle("POST /admin/upcoming-events/{id}/delete", wrap(http.HandlerFunc(h.AdminEventDelete)))
	mux.Handle("GET /admin/pending-admissions", wrap(http.HandlerFunc(h.AdminAdmissions)))
	mux.Handle("POST /admin/pending-admissions/{id}/approve", wrap(http.HandlerFunc(h.AdminAdmissionApprove)))
	mux.Handle("GET /admin/payments", wrap(http.HandlerFunc(h.AdminPayments)))
	mux.Handle("GET /admin/myprofile", wrap(http.HandlerFunc(h.AdminProfile)))
	mux.Handle("GET /admin/student-help", wrap(http.HandlerFunc(h.AdminHelp)))
	mux.Handle("GET /admin/online-test-reports", wrap(http.HandlerFunc(h.AdminTestReports)))
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the file server response.
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
