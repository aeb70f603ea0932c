package model

// HelpTicket is a student support request with an optional admin reply.
type HelpTicket struct {
	ID          int64  `json:"id"`
	StudentName string `json:"studentName,omitempty"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	Reply       string `json:"reply,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
