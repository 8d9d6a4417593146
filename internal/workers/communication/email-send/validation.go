package emailsend

import (
	"fmt"
	"net/mail"
	"strings"

	"influencer-outreach/internal/models"
)

// validateContact rejects contacts that cannot be addressed. The AI output
// is otherwise trusted.
func validateContact(contact models.RecommendedContact) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(contact.Email))
	if err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", contact.Email, err)
	}
	if addr.Name != "" || !strings.Contains(addr.Address, ".") {
		return fmt.Errorf("invalid recipient address %q", contact.Email)
	}
	if strings.TrimSpace(contact.Subject) == "" {
		return fmt.Errorf("subject is empty")
	}
	return nil
}

// messageDomain returns the domain used in generated Message-IDs.
func messageDomain(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return from[i+1:]
	}
	return "localhost"
}
