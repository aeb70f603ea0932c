package learnix

import (
	"context"
	"fmt"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// TeacherDashboard returns the teacher's dashboard aggregates.
func (c *Client) TeacherDashboard(ctx context.Context) (*model.TeacherDashboard, error) {
	var out model.TeacherDashboard
	if err := c.get(ctx, "/api/teacher/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TeacherStudents lists students in the teacher's courses.
func (c *Client) TeacherStudents(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.get(ctx, "/api/teacher/students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeacherStudentProfile returns one student's profile as seen by a teacher.
func (c *Client) TeacherStudentProfile(ctx context.Context, studentID int64) (*model.User, error) {
	var out model.User
	path := fmt.Sprintf("/api/teacher/students/%d/profile", studentID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TeacherSubjects lists courses the teacher owns.
func (c *Client) TeacherSubjects(ctx context.Context) ([]model.Course, error) {
	var out []model.Course
	if err := c.get(ctx, "/api/teacher/my-subjects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAttendance submits one date's presence marks for a course.
func (c *Client) MarkAttendance(ctx context.Context, mark model.AttendanceMark) error {
	return c.post(ctx, "/api/teacher/attendance/mark", mark, nil)
}

// AssignGrade records marks for a student.
func (c *Client) AssignGrade(ctx context.Context, g model.GradeAssignment) error {
	return c.post(ctx, "/api/teacher/grading/assign", g, nil)
}

// TeacherAnnouncements lists notices the teacher posted.
func (c *Client) TeacherAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var out []model.Announcement
	if err := c.get(ctx, "/api/teacher/announcements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostAnnouncement publishes a notice for a course.
func (c *Client) PostAnnouncement(ctx context.Context, a model.Announcement) error {
	return c.post(ctx, "/api/teacher/announcements", a, nil)
}

// TeacherTests lists tests the teacher created.
func (c *Client) TeacherTests(ctx context.Context) ([]model.OnlineTest, error) {
	var out []model.OnlineTest
	if err := c.get(ctx, "/api/teacher/tests", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTest schedules a new online test.
func (c *Client) CreateTest(ctx context.Context, t model.OnlineTest) error {
	return c.post(ctx, "/api/teacher/tests", t, nil)
}

// TestSubmissions lists graded submissions for one of the teacher's tests.
func (c *Client) TestSubmissions(ctx context.Context, testID int64) ([]model.TestResult, error) {
	var out []model.TestResult
	path := fmt.Sprintf("/api/teacher/tests/%d/submissions", testID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
