package model

// Payment is a fee transaction as listed on student and admin pages.
type Payment struct {
	ID          int64   `json:"id"`
	StudentName string  `json:"studentName,omitempty"`
	CourseTitle string  `json:"courseTitle"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Method      string  `json:"method,omitempty"`
	PaidAt      string  `json:"paidAt,omitempty"`
}
