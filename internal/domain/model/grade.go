package model

// Grade is a mark assigned to a student for an exam in a subject.
type Grade struct {
	Subject  string  `json:"subject"`
	Exam     string  `json:"exam"`
	Marks    float64 `json:"marks"`
	MaxMarks float64 `json:"maxMarks"`
	Grade    string  `json:"grade"`
}

// GradeAssignment is a teacher's grading submission.
type GradeAssignment struct {
	StudentID int64   `json:"studentId"`
	CourseID  int64   `json:"courseId"`
	Exam      string  `json:"exam"`
	Marks     float64 `json:"marks"`
	MaxMarks  float64 `json:"maxMarks"`
}
