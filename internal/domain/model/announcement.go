package model

// Announcement is a notice posted by a teacher for a course.
type Announcement struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CourseTitle string `json:"courseTitle,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Event is an institution-wide calendar entry managed by admins.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
}
