// internal/models/recommendation.go
package models

// RecommendedContact is one shortlist entry returned by the AI service,
// carrying the drafted outreach email for that influencer.
type RecommendedContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Delivery statuses of a single outreach email.
const (
	DeliveryStatusSent    = "sent"
	DeliveryStatusFailed  = "failed"
	DeliveryStatusSkipped = "skipped"
)

// DeliveryResult is the outcome of one outreach attempt.
type DeliveryResult struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OutreachSummary totals the delivery results of a run.
type OutreachSummary struct {
	Attempted int `json:"attempted"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Summarize counts results by status.
func Summarize(results []DeliveryResult) OutreachSummary {
	var s OutreachSummary
	for _, r := range results {
		switch r.Status {
		case DeliveryStatusSent:
			s.Attempted++
			s.Sent++
		case DeliveryStatusFailed:
			s.Attempted++
			s.Failed++
		case DeliveryStatusSkipped:
			s.Skipped++
		}
	}
	return s
}
