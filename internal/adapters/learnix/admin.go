package learnix

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// AdminStats returns the admin dashboard counters.
func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var out model.AdminStats
	if err := c.get(ctx, "/api/admin/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminStudents lists every approved student.
func (c *Client) AdminStudents(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.get(ctx, "/api/admin/students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminTeachers lists every teacher account.
func (c *Client) AdminTeachers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.get(ctx, "/api/admin/teachers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminPayments lists fee transactions across all students.
func (c *Client) AdminPayments(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	if err := c.get(ctx, "/api/admin/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingAdmissions lists registrations awaiting approval.
func (c *Client) PendingAdmissions(ctx context.Context) ([]model.PendingAdmission, error) {
	var out []model.PendingAdmission
	if err := c.get(ctx, "/api/admin/pending-admissions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentAdmissions lists the newest approved students.
func (c *Client) RecentAdmissions(ctx context.Context) ([]model.PendingAdmission, error) {
	var out []model.PendingAdmission
	if err := c.get(ctx, "/api/admin/recent-admissions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveAdmission accepts a pending registration.
func (c *Client) ApproveAdmission(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/admin/approve-admission/%d", id), nil, nil)
}

// TopPerformers lists the best-scoring students per course.
func (c *Client) TopPerformers(ctx context.Context) ([]model.TopPerformer, error) {
	var out []model.TopPerformer
	if err := c.get(ctx, "/api/admin/top-performers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminEvents lists institution-wide calendar entries.
func (c *Client) AdminEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	if err := c.get(ctx, "/api/admin/events", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEvent adds a calendar entry.
func (c *Client) CreateEvent(ctx context.Context, e model.Event) error {
	return c.post(ctx, "/api/admin/events", e, nil)
}

// DeleteEvent removes a calendar entry.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/events/%d", id))
}

// DeleteStudent removes a student account.
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/students/%d", id))
}

// CreateTeacher provisions a new teacher account.
func (c *Client) CreateTeacher(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.post(ctx, "/api/admin/teachers", body, nil)
}

// DeleteTeacher removes a teacher account.
func (c *Client) DeleteTeacher(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/teachers/%d", id))
}

// AdminHelpTickets lists support requests across all students.
func (c *Client) AdminHelpTickets(ctx context.Context) ([]model.HelpTicket, error) {
	var out []model.HelpTicket
	if err := c.get(ctx, "/api/admin/student-help", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OnlineTestReports lists graded test results across the institution.
func (c *Client) OnlineTestReports(ctx context.Context) ([]model.TestResult, error) {
	var out []model.TestResult
	if err := c.get(ctx, "/api/admin/online-test-reports", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReportsAnalytics returns the raw analytics document. Callers extract the
// metrics they need with the reports service rather than binding the whole
// shape here.
func (c *Client) ReportsAnalytics(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, "/api/admin/reports/analytics", &out); err != nil {
		return nil, err
	}
	return out, nil
}
