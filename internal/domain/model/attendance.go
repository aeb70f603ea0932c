package model

// AttendanceRecord is one day's presence mark for a student in a subject.
type AttendanceRecord struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Status  string `json:"status"`
}

// AttendanceSummary aggregates a student's attendance for the dashboard.
type AttendanceSummary struct {
	TotalClasses int     `json:"totalClasses"`
	Attended     int     `json:"attended"`
	Percentage   float64 `json:"percentage"`
}

// AttendanceMark is a teacher's bulk attendance submission for one date.
type AttendanceMark struct {
	CourseID int64            `json:"courseId"`
	Date     string           `json:"date"`
	Statuses map[int64]string `json:"statuses"`
}
