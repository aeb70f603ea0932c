package nav

// Package nav computes the navigation entries visible to a session. The
// per-role tables are static configuration, not derived from permissions
// data, so the sidebar is a pure function of session state.

import (
	"github.com/learnix/learnix-portal/internal/domain/auth"
)

// Entry is one sidebar link.
type Entry struct {
	Label string
	Path  string
	Icon  string
}

var studentEntries = []Entry{
	{Label: "Dashboard", Path: "/student/dashboard", Icon: "home"},
	{Label: "Courses", Path: "/student/my-courses", Icon: "book-open"},
	{Label: "Attendance", Path: "/student/attendance", Icon: "clipboard-check"},
	{Label: "Marks", Path: "/student/marks", Icon: "chart-bar"},
	{Label: "Payments", Path: "/student/payments", Icon: "credit-card"},
	{Label: "Online Tests", Path: "/student/tests", Icon: "document-text"},
}

var teacherEntries = []Entry{
	{Label: "Dashboard", Path: "/teacher/dashboard", Icon: "home"},
	{Label: "Students", Path: "/teacher/students", Icon: "users"},
	{Label: "Attendance", Path: "/teacher/attendance", Icon: "clipboard-check"},
	{Label: "Courses", Path: "/teacher/my-courses", Icon: "book-open"},
	{Label: "Announcements", Path: "/teacher/announcements", Icon: "bell"},
	{Label: "Online Tests", Path: "/teacher/tests", Icon: "document-text"},
}

var adminEntries = []Entry{
	{Label: "Dashboard", Path: "/admin/dashboard", Icon: "home"},
	{Label: "Students", Path: "/admin/students", Icon: "users"},
	{Label: "Teachers", Path: "/admin/teachers", Icon: "academic-cap"},
	{Label: "Courses", Path: "/admin/manage-courses", Icon: "book-open"},
	{Label: "Reports", Path: "/admin/reports", Icon: "chart-bar"},
	{Label: "Online Test Reports", Path: "/admin/online-test-reports", Icon: "document-text"},
	{Label: "Upcoming Events", Path: "/admin/upcoming-events", Icon: "bell"},
	{Label: "Payments", Path: "/admin/payments", Icon: "credit-card"},
	{Label: "Student Help", Path: "/admin/student-help", Icon: "question-mark-circle"},
}

// VisibleEntries returns the ordered sidebar entries for the session. The
// result is empty for anonymous sessions. Callers must not mutate the
// returned slice; a fresh copy is handed out on every call.
func VisibleEntries(s auth.Session) []Entry {
	if s.IsAnonymous() {
		return nil
	}
	return EntriesForRole(s.Identity.Role)
}

// EntriesForRole returns the static table for a role, copied so callers
// cannot mutate the configuration.
func EntriesForRole(r auth.Role) []Entry {
	var table []Entry
	switch r {
	case auth.RoleStudent:
		table = studentEntries
	case auth.RoleTeacher:
		table = teacherEntries
	case auth.RoleAdmin:
		table = adminEntries
	default:
		return nil
	}
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}
