// internal/pipeline/summary.go
package pipeline

import (
	"influencer-outreach/internal/models"
	emailsend "influencer-outreach/internal/workers/communication/email-send"
)

func printSummary(p *Prompter, out *emailsend.Output) {
	if out.Skipped {
		p.Printf("\n--- SENDING SKIPPED ---\n")
		for _, r := range out.Results {
			p.Printf("Recipient: %s\n", r.Email)
			p.Printf("Subject: %s\n", r.Subject)
		}
		p.Printf("Reason: %s\n", out.SkipReason)
		p.Printf("-----------------------\n")
		return
	}

	for _, r := range out.Results {
		switch r.Status {
		case models.DeliveryStatusSent:
			p.Printf("Successfully sent email to %s\n", r.Email)
		case models.DeliveryStatusFailed:
			p.Printf("Error sending email to %s: %s\n", r.Email, r.Error)
		case models.DeliveryStatusSkipped:
			p.Printf("Not sent to %s (%s): %s\n", r.Email, r.Error, r.Subject)
		}
	}

	s := out.Summary
	p.Printf("\nSummary: attempted %d, sent %d, failed %d, skipped %d (provider %s)\n",
		s.Attempted, s.Sent, s.Failed, s.Skipped, out.Provider)
}
