package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// TeacherDashboard serves the teacher landing page.
// GET /teacher/dashboard.
func (h *UIHandlers) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Dashboard", PageTitle: "Dashboard", CurrentPage: PageTeacherDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				dashboard     *model.TeacherDashboard
				announcements []model.Announcement
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				dashboard, err = h.Teachers.TeacherDashboard(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				announcements, err = h.Teachers.TeacherAnnouncements(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Dashboard"] = dashboard
			data["Announcements"] = announcements
			return nil
		},
	})
}

// TeacherCourses serves the subjects the teacher runs.
// GET /teacher/my-courses.
func (h *UIHandlers) TeacherCourses(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - My Courses", PageTitle: "My Courses", CurrentPage: PageTeacherCourses},
		Fetch: func(ctx context.Context, data map[string]any) error {
			courses, err := h.Teachers.TeacherSubjects(ctx)
			if err != nil {
				return err
			}
			data["Courses"] = courses
			return nil
		},
	})
}

// TeacherStudents serves the roster of the teacher's students.
// GET /teacher/students.
func (h *UIHandlers) TeacherStudents(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Students", PageTitle: "Students", CurrentPage: PageTeacherStudents},
		Fetch: func(ctx context.Context, data map[string]any) error {
			students, err := h.Teachers.TeacherStudents(ctx)
			if err != nil {
				return err
			}
			data["Students"] = students
			return nil
		},
	})
}

// TeacherStudentDetail serves one student's profile as seen by the teacher.
// GET /teacher/students/{id}.
func (h *UIHandlers) TeacherStudentDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Student", PageTitle: "Student", CurrentPage: PageTeacherStudentDetail},
		Fetch: func(ctx context.Context, data map[string]any) error {
			profile, err := h.Teachers.TeacherStudentProfile(ctx, id)
			if err != nil {
				return err
			}
			data["Profile"] = profile
			data["PageTitle"] = profile.Name
			return nil
		},
	})
}

// TeacherAttendance serves the attendance marking form.
// GET /teacher/attendance.
func (h *UIHandlers) TeacherAttendance(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Attendance", PageTitle: "Mark Attendance", CurrentPage: PageTeacherAttendance},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				courses  []model.Course
				students []model.User
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				courses, err = h.Teachers.TeacherSubjects(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				students, err = h.Teachers.TeacherStudents(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Courses"] = courses
			data["Students"] = students
			return nil
		},
	})
}

// TeacherAttendanceSubmit records attendance for a course and date. The
// per-student status fields are named status_<studentID>.
// POST /teacher/attendance.
func (h *UIHandlers) TeacherAttendanceSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/attendance", http.StatusSeeOther)
		return
	}

	courseID, err := strconv.ParseInt(r.PostFormValue("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		http.Redirect(w, r, "/teacher/attendance", http.StatusSeeOther)
		return
	}

	mark := model.AttendanceMark{
		CourseID: courseID,
		Date:     strings.TrimSpace(r.PostFormValue("date")),
		Statuses: map[int64]string{},
	}
	for key, values := range r.PostForm {
		sid, found := strings.CutPrefix(key, "status_")
		if !found || len(values) == 0 {
			continue
		}
		n, parseErr := strconv.ParseInt(sid, 10, 64)
		if parseErr != nil {
			continue
		}
		mark.Statuses[n] = values[0]
	}

	if err := h.Teachers.MarkAttendance(r.Context(), mark); err != nil {
		h.logger().WarnContext(r.Context(), "attendance submit failed",
			"course_id", courseID,
			"error", err)
	}
	http.Redirect(w, r, "/teacher/attendance", http.StatusSeeOther)
}

// TeacherGrading serves the grading form.
// GET /teacher/grading.
func (h *UIHandlers) TeacherGrading(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Grading", PageTitle: "Grading", CurrentPage: PageTeacherGrading},
		Fetch: func(ctx context.Context, data map[string]any) error {
			var (
				courses  []model.Course
				students []model.User
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				courses, err = h.Teachers.TeacherSubjects(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				students, err = h.Teachers.TeacherStudents(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Courses"] = courses
			data["Students"] = students
			return nil
		},
	})
}

// TeacherGradingSubmit assigns a grade to a student.
// POST /teacher/grading.
func (h *UIHandlers) TeacherGradingSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/grading", http.StatusSeeOther)
		return
	}

	studentID, err1 := strconv.ParseInt(r.PostFormValue("student_id"), 10, 64)
	courseID, err2 := strconv.ParseInt(r.PostFormValue("course_id"), 10, 64)
	marks, err3 := strconv.ParseFloat(r.PostFormValue("marks"), 64)
	maxMarks, err4 := strconv.ParseFloat(r.PostFormValue("max_marks"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		http.Redirect(w, r, "/teacher/grading", http.StatusSeeOther)
		return
	}

	assignment := model.GradeAssignment{
		StudentID: studentID,
		CourseID:  courseID,
		Exam:      strings.TrimSpace(r.PostFormValue("exam")),
		Marks:     marks,
		MaxMarks:  maxMarks,
	}

	if err := h.Teachers.AssignGrade(r.Context(), assignment); err != nil {
		h.logger().WarnContext(r.Context(), "grade submit failed",
			"student_id", studentID,
			"error", err)
	}
	http.Redirect(w, r, "/teacher/grading", http.StatusSeeOther)
}

// TeacherAnnouncements serves the teacher's posted announcements.
// GET /teacher/announcements.
func (h *UIHandlers) TeacherAnnouncements(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Announcements", PageTitle: "Announcements", CurrentPage: PageTeacherAnnouncements},
		Fetch: func(ctx context.Context, data map[string]any) error {
			announcements, err := h.Teachers.TeacherAnnouncements(ctx)
			if err != nil {
				return err
			}
			data["Announcements"] = announcements
			return nil
		},
	})
}

// TeacherAnnouncementSubmit posts a new announcement.
// POST /teacher/announcements.
func (h *UIHandlers) TeacherAnnouncementSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/announcements", http.StatusSeeOther)
		return
	}

	announcement := model.Announcement{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Body:        strings.TrimSpace(r.PostFormValue("body")),
		CourseTitle: strings.TrimSpace(r.PostFormValue("course_title")),
	}
	if announcement.Title == "" || announcement.Body == "" {
		http.Redirect(w, r, "/teacher/announcements", http.StatusSeeOther)
		return
	}

	if err := h.Teachers.PostAnnouncement(r.Context(), announcement); err != nil {
		h.logger().WarnContext(r.Context(), "announcement submit failed", "error", err)
	}
	http.Redirect(w, r, "/teacher/announcements", http.StatusSeeOther)
}

// TeacherTests serves the teacher's tests with their latest submissions.
// GET /teacher/tests.
func (h *UIHandlers) TeacherTests(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Online Tests", PageTitle: "Online Tests", CurrentPage: PageTeacherTests},
		Fetch: func(ctx context.Context, data map[string]any) error {
			tests, err := h.Teachers.TeacherTests(ctx)
			if err != nil {
				return err
			}
			data["Tests"] = tests
			return nil
		},
	})
}

// TeacherTestSubmissions serves the graded submissions of one test.
// GET /teacher/tests/{id}.
func (h *UIHandlers) TeacherTestSubmissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Learnix - Test Submissions", PageTitle: "Test Submissions", CurrentPage: PageTeacherTests},
		Fetch: func(ctx context.Context, data map[string]any) error {
			results, err := h.Teachers.TestSubmissions(ctx, id)
			if err != nil {
				return err
			}
			data["Results"] = results
			return nil
		},
	})
}

// TeacherTestCreate schedules a new test.
// POST /teacher/tests.
func (h *UIHandlers) TeacherTestCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/teacher/tests", http.StatusSeeOther)
		return
	}

	duration, _ := strconv.Atoi(r.PostFormValue("duration_minutes"))
	test := model.OnlineTest{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		Subject:         strings.TrimSpace(r.PostFormValue("subject")),
		ScheduledAt:     strings.TrimSpace(r.PostFormValue("scheduled_at")),
		DurationMinutes: duration,
	}
	if test.Title == "" || test.Subject == "" {
		http.Redirect(w, r, "/teacher/tests", http.StatusSeeOther)
		return
	}

	if err := h.Teachers.CreateTest(r.Context(), test); err != nil {
		h.logger().WarnContext(r.Context(), "test create failed", "error", err)
	}
	http.Redirect(w, r, "/teacher/tests", http.StatusSeeOther)
}

// TeacherProfile serves the teacher's own profile. The backend has no
// teacher profile endpoint, so the page renders from the session identity.
// GET /teacher/myprofile.
func (h *UIHandlers) TeacherProfile(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta:  PageMeta{Title: "Learnix - My Profile", PageTitle: "My Profile", CurrentPage: PageTeacherProfile},
		Fetch: h.profileFromSession,
	})
}
