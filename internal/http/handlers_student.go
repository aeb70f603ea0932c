package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// StudentDashboard serves the student landing page.
// GET /student/dashboard.
func (h *UIHandlers) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Dashboard", PageTitle: "Dashboard", CurrentPage: PageStudentDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				enrollments   []model.Enrollment
				summary       *model.AttendanceSummary
				pending       int
				announcements []model.Announcement
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				enrollments, err = h.Students.MyCourses(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				summary, err = h.Students.StudentAttendanceSummary(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				pending, err = h.Students.PendingPaymentCount(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				announcements, err = h.Students.StudentAnnouncements(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Enrollments"] = enrollments
			data["AttendanceSummary"] = summary
			data["PendingPayments"] = pending
			data["Announcements"] = announcements
			return nil
		},
	})
}

// StudentCourses serves the course catalog for students.
// GET /student/courses.
func (h *UIHandlers) StudentCourses(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Courses", PageTitle: "Courses", CurrentPage: PageStudentCourses},
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

// StudentCourseDetail serves a single course with its contents.
// GET /student/courses/{id}.
func (h *UIHandlers) StudentCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Course", PageTitle: "Course", CurrentPage: PageStudentCourseDetail},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				course   *model.Course
				contents []model.CourseContent
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				course, err = h.Catalog.GetCourse(gctx, id)
				return err
			})
			g.Go(func() error {
				var err error
				contents, err = h.Catalog.GetCourseContents(gctx, id)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Course"] = course
			data["PageTitle"] = course.Title
			data["Contents"] = contents
			return nil
		},
	})
}

// StudentMyCourses serves the student's enrollments.
// GET /student/my-courses.
func (h *UIHandlers) StudentMyCourses(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - My Courses", PageTitle: "My Courses", CurrentPage: PageStudentMyCourses},
		Fetch: func(ctx context.Context, data map[string]any) error {
			enrollments, err := h.Students.MyCourses(ctx)
			if err != nil {
				return err
			}
			data["Enrollments"] = enrollments
			return nil
		},
	})
}

// StudentAttendance serves the attendance history with the aggregate
// summary alongside.
// GET /student/attendance.
func (h *UIHandlers) StudentAttendance(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Attendance", PageTitle: "Attendance", CurrentPage: PageStudentAttendance},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				records []model.AttendanceRecord
				summary *model.AttendanceSummary
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				records, err = h.Students.StudentAttendance(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				summary, err = h.Students.StudentAttendanceSummary(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Records"] = records
			data["Summary"] = summary
			return nil
		},
	})
}

// StudentMarks serves the grade list.
// GET /student/marks.
func (h *UIHandlers) StudentMarks(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Marks", PageTitle: "Marks", CurrentPage: PageStudentMarks},
		Fetch: func(ctx context.Context, data map[string]any) error {
			grades, err := h.Students.StudentGrades(ctx)
			if err != nil {
				return err
			}
			data["Grades"] = grades
			return nil
		},
	})
}

// StudentPayments serves the payment history.
// GET /student/payments.
func (h *UIHandlers) StudentPayments(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Payments", PageTitle: "Payments", CurrentPage: PageStudentPayments},
		Fetch: func(ctx context.Context, data map[string]any) error {
			payments, err := h.Students.StudentPayments(ctx)
			if err != nil {
				return err
			}
			data["Payments"] = payments
			return nil
		},
	})
}

// StudentProfile serves the student's own profile.
// GET /student/myprofile.
func (h *UIHandlers) StudentProfile(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - My Profile", PageTitle: "My Profile", CurrentPage: PageStudentProfile},
		Fetch: func(ctx context.Context, data map[string]any) error {
			profile, err := h.Students.StudentProfile(ctx)
			if err != nil {
				return err
			}
			data["Profile"] = profile
			return nil
		},
	})
}

// StudentProfileSubmit saves profile edits to the backend.
// POST /student/myprofile.
func (h *UIHandlers) StudentProfileSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/student/myprofile", http.StatusSeeOther)
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	phone := strings.TrimSpace(r.PostFormValue("phone"))
	if name == "" {
		http.Redirect(w, r, "/student/myprofile", http.StatusSeeOther)
		return
	}

	session := CurrentSession(r.Context())
	if session.IsAnonymous() {
		redirectToLogin(w, r)
		return
	}
	update := model.User{
		ID:    session.Identity.ID,
		Name:  name,
		Email: session.Identity.Email,
		Role:  string(session.Identity.Role),
		Phone: phone,
	}
	if _, err := h.Students.UpdateStudentProfile(r.Context(), update); err != nil {
		h.logger().WarnContext(r.Context(), "profile update failed", "error", err)
	}
	http.Redirect(w, r, "/student/myprofile", http.StatusSeeOther)
}

// StudentHelp serves the help desk with the student's open tickets.
// GET /student/help.
func (h *UIHandlers) StudentHelp(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Help", PageTitle: "Help", CurrentPage: PageStudentHelp},
		Fetch: func(ctx context.Context, data map[string]any) error {
			tickets, err := h.Students.StudentHelpTickets(ctx)
			if err != nil {
				return err
			}
			data["Tickets"] = tickets
			return nil
		},
	})
}

// StudentHelpSubmit files a new help ticket.
// POST /student/help.
func (h *UIHandlers) StudentHelpSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/student/help", http.StatusSeeOther)
		return
	}
	subject := strings.TrimSpace(r.PostFormValue("subject"))
	message := strings.TrimSpace(r.PostFormValue("message"))
	if subject == "" || message == "" {
		http.Redirect(w, r, "/student/help", http.StatusSeeOther)
		return
	}

	if err := h.Students.CreateHelpTicket(r.Context(), subject, message); err != nil {
		h.logger().WarnContext(r.Context(), "help ticket submit failed", "error", err)
	}
	http.Redirect(w, r, "/student/help", http.StatusSeeOther)
}

// StudentTests serves available tests and past results.
// GET /student/tests.
func (h *UIHandlers) StudentTests(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Online Tests", PageTitle: "Online Tests", CurrentPage: PageStudentTests},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				tests   []model.OnlineTest
				results []model.TestResult
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				tests, err = h.Students.StudentTests(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				results, err = h.Students.StudentTestResults(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Tests"] = tests
			data["Results"] = results
			return nil
		},
	})
}

// StudentTestSubmit grades a submitted test and shows the result.
// POST /student/tests/{id}.
func (h *UIHandlers) StudentTestSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/student/tests", http.StatusSeeOther)
		return
	}

	sub := model.TestSubmission{Answers: map[int64]string{}}
	for key, values := range r.PostForm {
		qid, found := strings.CutPrefix(key, "answer_")
		if !found || len(values) == 0 {
			continue
		}
		n, err := strconv.ParseInt(qid, 10, 64)
		if err != nil {
			continue
		}
		sub.Answers[n] = values[0]
	}

	result, err := h.Students.SubmitTest(r.Context(), id, sub)
	if err != nil {
		h.logger().WarnContext(r.Context(), "test submit failed", "test_id", id, "error", err)
		http.Redirect(w, r, "/student/tests", http.StatusSeeOther)
		return
	}

	data := basePageData(r, PageMeta{
		Title: "Learnix - Test Result", PageTitle: "Test Result", CurrentPage: PageStudentTests,
	})
	data["SubmittedResult"] = result
	h.renderPage(w, r, data)
}

// StudentNotifications serves announcements addressed to students.
// GET /student/notifications.
func (h *UIHandlers) StudentNotifications(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Notifications", PageTitle: "Notifications", CurrentPage: PageStudentNotifications},
		Fetch: func(ctx context.Context, data map[string]any) error {
			announcements, err := h.Students.StudentAnnouncements(ctx)
			if err != nil {
				return err
			}
			data["Announcements"] = announcements
			return nil
		},
	})
}
