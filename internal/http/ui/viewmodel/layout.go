package viewmodel

import "github.com/learnix/learnix-portal/internal/domain/nav"

// User represents the authenticated user context exposed to templates.
type User struct {
	Name  string
	Email string
	Role  string
}

// Layout captures shared chrome metadata (titles, navigation, auth state).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	IsAuthenticated bool
	User            *User
	// Nav holds the sidebar entries visible to the current session. Empty
	// for anonymous visitors.
	Nav []nav.Entry
}
