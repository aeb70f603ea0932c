package model

// User is the backend's user projection as shown on profile and admin pages.
// The authenticated principal itself lives in internal/domain/auth.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Approved bool   `json:"approved"`
}

// PendingAdmission is a registration awaiting admin approval.
type PendingAdmission struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AppliedAt string `json:"appliedAt"`
}
