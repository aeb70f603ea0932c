package model

// AdminStats backs the admin dashboard cards.
type AdminStats struct {
	TotalStudents int     `json:"totalStudents"`
	TotalTeachers int     `json:"totalTeachers"`
	TotalCourses  int     `json:"totalCourses"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// TeacherDashboard backs the teacher dashboard cards.
type TeacherDashboard struct {
	TotalStudents  int    `json:"totalStudents"`
	TotalCourses   int    `json:"totalCourses"`
	PendingGrading int    `json:"pendingGrading"`
	NextClass      string `json:"nextClass,omitempty"`
}

// TopPerformer is one row of the admin top-performers widget.
type TopPerformer struct {
	StudentName string  `json:"studentName"`
	CourseTitle string  `json:"courseTitle"`
	Score       float64 `json:"score"`
}
