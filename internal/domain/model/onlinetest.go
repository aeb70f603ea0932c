package model

// OnlineTest is a scheduled test visible to students and teachers.
type OnlineTest struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	ScheduledAt     string `json:"scheduledAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// TestQuestion is one multiple-choice question inside a test.
type TestQuestion struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// TestSubmission carries a student's answers keyed by question ID.
type TestSubmission struct {
	Answers map[int64]string `json:"answers"`
}

// TestResult is a graded submission.
type TestResult struct {
	TestID      int64   `json:"testId"`
	Title       string  `json:"title"`
	StudentName string  `json:"studentName,omitempty"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"maxScore"`
	TakenAt     string  `json:"takenAt"`
}
