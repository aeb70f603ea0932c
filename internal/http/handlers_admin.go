package httpx

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// AdminDashboard serves the admin landing page: the stat cards plus the
// recent-admissions and top-performers widgets, fetched concurrently.
// GET /admin/dashboard.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Admin", PageTitle: "Dashboard", CurrentPage: PageAdminDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				stats      *model.AdminStats
				admissions []model.PendingAdmission
				performers []model.TopPerformer
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				stats, err = h.Admins.AdminStats(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				admissions, err = h.Admins.RecentAdmissions(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				performers, err = h.Admins.TopPerformers(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Stats"] = stats
			data["RecentAdmissions"] = admissions
			data["TopPerformers"] = performers
			return nil
		},
	})
}

// AdminStudents serves the student roster.
// GET /admin/students.
func (h *UIHandlers) AdminStudents(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Students", PageTitle: "Students", CurrentPage: PageAdminStudents},
		Fetch: func(ctx context.Context, data map[string]any) error {
			students, err := h.Admins.AdminStudents(ctx)
			if err != nil {
				return err
			}
			data["Students"] = students
			return nil
		},
	})
}

// AdminStudentDelete removes a student account.
// POST /admin/students/{id}/delete.
func (h *UIHandlers) AdminStudentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.Admins.DeleteStudent(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "student delete failed", "student_id", id, "error", err)
	}
	http.Redirect(w, r, "/admin/students", http.StatusSeeOther)
}

// AdminTeachers serves the teacher roster.
// GET /admin/teachers.
func (h *UIHandlers) AdminTeachers(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Teachers", PageTitle: "Teachers", CurrentPage: PageAdminTeachers},
		Fetch: func(ctx context.Context, data map[string]any) error {
			teachers, err := h.Admins.AdminTeachers(ctx)
			if err != nil {
				return err
			}
			data["Teachers"] = teachers
			return nil
		},
	})
}

// AdminTeacherCreate adds a teacher account.
// POST /admin/teachers.
func (h *UIHandlers) AdminTeacherCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/teachers", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if name == "" || email == "" || password == "" {
		http.Redirect(w, r, "/admin/teachers", http.StatusSeeOther)
		return
	}

	if err := h.Admins.CreateTeacher(r.Context(), name, email, password); err != nil {
		h.logger().WarnContext(r.Context(), "teacher create failed", "email", email, "error", err)
	}
	http.Redirect(w, r, "/admin/teachers", http.StatusSeeOther)
}

// AdminTeacherDelete removes a teacher account.
// POST /admin/teachers/{id}/delete.
func (h *UIHandlers) AdminTeacherDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.Admins.DeleteTeacher(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "teacher delete failed", "teacher_id", id, "error", err)
	}
	http.Redirect(w, r, "/admin/teachers", http.StatusSeeOther)
}

// AdminCourses serves the course management page.
// GET /admin/manage-courses.
func (h *UIHandlers) AdminCourses(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Courses", PageTitle: "Manage Courses", CurrentPage: PageAdminCourses},
		Fetch: func(ctx context.Context, data map[string]any) error {
			courses, err := h.Catalog.ListCourses(ctx)
			if err != nil {
				return err
			}
			data["Courses"] = courses
			return nil
		},
	})
}

// AdminReports serves the configured report metrics extracted from the
// backend analytics document.
// GET /admin/reports.
func (h *UIHandlers) AdminReports(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta:  PageMeta{Title: "Learnix - Reports", PageTitle: "Reports", CurrentPage: PageAdminReports},
		Fetch: h.fetchReportMetrics,
	})
}

// AdminAnalytics serves the same metric set under the analytics page chrome.
// GET /admin/analytics.
func (h *UIHandlers) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta:  PageMeta{Title: "Learnix - Analytics", PageTitle: "Analytics", CurrentPage: PageAdminAnalytics},
		Fetch: h.fetchReportMetrics,
	})
}

func (h *UIHandlers) fetchReportMetrics(ctx context.Context, data map[string]any) error {
	metrics, err := h.Reports.Extract(ctx)
	if err != nil {
		return err
	}
	data["Metrics"] = metrics
	data["MetricNames"] = h.Reports.MetricNames()
	return nil
}

// AdminEvents serves the upcoming-events page.
// GET /admin/upcoming-events.
func (h *UIHandlers) AdminEvents(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Events", PageTitle: "Upcoming Events", CurrentPage: PageAdminEvents},
		Fetch: func(ctx context.Context, data map[string]any) error {
			events, err := h.Admins.AdminEvents(ctx)
			if err != nil {
				return err
			}
			data["Events"] = events
			return nil
		},
	})
}

// AdminEventCreate adds a calendar event.
// POST /admin/upcoming-events.
func (h *UIHandlers) AdminEventCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/upcoming-events", http.StatusSeeOther)
		return
	}

	event := model.Event{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Date:        strings.TrimSpace(r.PostFormValue("date")),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
	}
	if event.Title == "" || event.Date == "" {
		http.Redirect(w, r, "/admin/upcoming-events", http.StatusSeeOther)
		return
	}

	if err := h.Admins.CreateEvent(r.Context(), event); err != nil {
		h.logger().WarnContext(r.Context(), "event create failed", "error", err)
	}
	http.Redirect(w, r, "/admin/upcoming-events", http.StatusSeeOther)
}

// AdminEventDelete removes a calendar event.
// POST /admin/upcoming-events/{id}/delete.
func (h *UIHandlers) AdminEventDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.Admins.DeleteEvent(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "event delete failed", "event_id", id, "error", err)
	}
	http.Redirect(w, r, "/admin/upcoming-events", http.StatusSeeOther)
}

// AdminAdmissions serves the pending-admissions queue.
// GET /admin/pending-admissions.
func (h *UIHandlers) AdminAdmissions(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Admissions", PageTitle: "Pending Admissions", CurrentPage: PageAdminAdmissions},
		Fetch: func(ctx context.Context, data map[string]any) error {
			admissions, err := h.Admins.PendingAdmissions(ctx)
			if err != nil {
				return err
			}
			data["Admissions"] = admissions
			return nil
		},
	})
}

// AdminAdmissionApprove approves a pending admission.
// POST /admin/pending-admissions/{id}/approve.
func (h *UIHandlers) AdminAdmissionApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := h.Admins.ApproveAdmission(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "admission approve failed", "admission_id", id, "error", err)
	}
	http.Redirect(w, r, "/admin/pending-admissions", http.StatusSeeOther)
}

// AdminPayments serves the institution-wide payment list.
// GET /admin/payments.
func (h *UIHandlers) AdminPayments(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Payments", PageTitle: "Payments", CurrentPage: PageAdminPayments},
		Fetch: func(ctx context.Context, data map[string]any) error {
			payments, err := h.Admins.AdminPayments(ctx)
			if err != nil {
				return err
			}
			data["Payments"] = payments
			return nil
		},
	})
}

// AdminProfile serves the admin's own profile from the session identity.
// GET /admin/myprofile.
func (h *UIHandlers) AdminProfile(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta:  PageMeta{Title: "Learnix - My Profile", PageTitle: "My Profile", CurrentPage: PageAdminProfile},
		Fetch: h.profileFromSession,
	})
}

// AdminTestReports serves graded test results across the institution.
// GET /admin/online-test-reports.
func (h *UIHandlers) AdminTestReports(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Test Reports", PageTitle: "Online Test Reports", CurrentPage: PageAdminTestReports},
		Fetch: func(ctx context.Context, data map[string]any) error {
			results, err := h.Admins.OnlineTestReports(ctx)
			if err != nil {
				return err
			}
			data["Results"] = results
			return nil
		},
	})
}

// AdminHelp serves the student help tickets raised for admin attention.
// GET /admin/student-help.
func (h *UIHandlers) AdminHelp(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Student Help", PageTitle: "Student Help", CurrentPage: PageAdminHelp},
		Fetch: func(ctx context.Context, data map[string]any) error {
			tickets, err := h.Admins.AdminHelpTickets(ctx)
			if err != nil {
				return err
			}
			data["Tickets"] = tickets
			return nil
		},
	})
}
