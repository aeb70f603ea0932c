package learnix

import (
	"context"
	"fmt"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// StudentProfile returns the signed-in student's profile.
func (c *Client) StudentProfile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.get(ctx, "/api/student/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudentProfile saves edits to the signed-in student's profile and
// returns the stored record.
func (c *Client) UpdateStudentProfile(ctx context.Context, u model.User) (*model.User, error) {
	var out model.User
	if err := c.put(ctx, "/api/student/profile", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyCourses lists the student's enrollments.
func (c *Client) MyCourses(ctx context.Context) ([]model.Enrollment, error) {
	var out []model.Enrollment
	if err := c.get(ctx, "/api/student/my-courses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentAttendance lists the student's per-day attendance records.
func (c *Client) StudentAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	if err := c.get(ctx, "/api/student/attendance", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentAttendanceSummary returns the aggregate used on the dashboard.
func (c *Client) StudentAttendanceSummary(ctx context.Context) (*model.AttendanceSummary, error) {
	var out model.AttendanceSummary
	if err := c.get(ctx, "/api/student/attendance/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentGrades lists the student's marks.
func (c *Client) StudentGrades(ctx context.Context) ([]model.Grade, error) {
	var out []model.Grade
	if err := c.get(ctx, "/api/student/grades", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentPayments lists the student's fee transactions.
func (c *Client) StudentPayments(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	if err := c.get(ctx, "/api/student/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingPaymentCount returns the badge count shown in the sidebar.
func (c *Client) PendingPaymentCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/api/student/payments/pending-count", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// StudentTests lists tests available to the student.
func (c *Client) StudentTests(ctx context.Context) ([]model.OnlineTest, error) {
	var out []model.OnlineTest
	if err := c.get(ctx, "/api/student/tests", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentTestResults lists the student's graded submissions.
func (c *Client) StudentTestResults(ctx context.Context) ([]model.TestResult, error) {
	var out []model.TestResult
	if err := c.get(ctx, "/api/student/tests/results", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitTest uploads the student's answers for a test.
func (c *Client) SubmitTest(ctx context.Context, testID int64, sub model.TestSubmission) (*model.TestResult, error) {
	var out model.TestResult
	path := fmt.Sprintf("/api/student/tests/%d/submit", testID)
	if err := c.post(ctx, path, sub, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentAnnouncements lists notices addressed to the student.
func (c *Client) StudentAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var out []model.Announcement
	if err := c.get(ctx, "/api/student/announcements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentHelpTickets lists the student's support requests.
func (c *Client) StudentHelpTickets(ctx context.Context) ([]model.HelpTicket, error) {
	var out []model.HelpTicket
	if err := c.get(ctx, "/api/student/help", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHelpTicket files a new support request.
func (c *Client) CreateHelpTicket(ctx context.Context, subject, message string) error {
	body := map[string]string{"subject": subject, "message": message}
	return c.post(ctx, "/api/student/help", body, nil)
}
