package emailsend

import (
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/models"
)

type Input struct {
	Contacts []models.RecommendedContact `json:"contacts"`
}

type Output struct {
	Results    []models.DeliveryResult `json:"results"`
	Summary    models.OutreachSummary  `json:"summary"`
	Provider   string                  `json:"provider"`
	Skipped    bool                    `json:"skipped"`
	SkipReason string                  `json:"skipReason,omitempty"`
}

// Email is one fully rendered outreach message.
type Email struct {
	MessageID   string
	FromAddress string
	FromName    string
	To          string
	Subject     string
	HTML        string
	Text        string
}

// InvitationRenderer produces the HTML and plain-text parts for a contact.
type InvitationRenderer interface {
	Render(contact models.RecommendedContact) (string, error)
	RenderText(contact models.RecommendedContact) (string, error)
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Mailer   Mailer
	Renderer InvitationRenderer
}
