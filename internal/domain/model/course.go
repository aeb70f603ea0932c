package model

// Course is a catalog entry offered for enrollment.
type Course struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	TeacherName string  `json:"teacherName"`
	ImageURL    string  `json:"imageUrl"`
}

// CourseContent is one lesson or resource inside a course.
type CourseContent struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
	Watched  bool   `json:"watched"`
}

// Enrollment ties a student to a course with progress tracking.
type Enrollment struct {
	CourseID    int64   `json:"courseId"`
	CourseTitle string  `json:"courseTitle"`
	TeacherName string  `json:"teacherName"`
	Progress    float64 `json:"progress"`
	EnrolledAt  string  `json:"enrolledAt"`
}
