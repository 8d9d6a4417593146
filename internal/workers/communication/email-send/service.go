package emailsend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/common/metrics"
	"influencer-outreach/internal/models"
)

const skipReasonNoCredentials = "email credentials are not configured"

type Service struct {
	config   *Config
	logger   logger.Logger
	mailer   Mailer
	renderer InvitationRenderer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		mailer:   deps.Mailer,
		renderer: deps.Renderer,
	}
}

// Execute renders and sends one email per contact, in order. A failed
// recipient is recorded and the remaining contacts are still attempted.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{Provider: s.providerName()}

	s.logger.Info("Executing outreach", map[string]interface{}{
		"recipients": len(input.Contacts),
		"provider":   out.Provider,
		"dryRun":     s.config.DryRun,
	})

	if !s.config.DryRun && (!s.config.CredentialsConfigured || s.mailer == nil) {
		return s.skipAll(input, skipReasonNoCredentials), nil
	}

	for i, contact := range input.Contacts {
		if err := ctx.Err(); err != nil {
			for _, rest := range input.Contacts[i:] {
				out.Results = append(out.Results, skippedResult(rest, "run cancelled"))
			}
			out.Summary = models.Summarize(out.Results)
			return out, fmt.Errorf("outreach interrupted: %w", err)
		}

		result := s.processContact(ctx, contact)
		metrics.EmailsProcessed.WithLabelValues(result.Status, out.Provider).Inc()
		out.Results = append(out.Results, result)
	}

	out.Summary = models.Summarize(out.Results)

	s.logger.Info("Outreach complete", map[string]interface{}{
		"attempted": out.Summary.Attempted,
		"sent":      out.Summary.Sent,
		"failed":    out.Summary.Failed,
		"skipped":   out.Summary.Skipped,
	})
	return out, nil
}

func (s *Service) processContact(ctx context.Context, contact models.RecommendedContact) models.DeliveryResult {
	result := models.DeliveryResult{
		Name:    contact.Name,
		Email:   contact.Email,
		Subject: contact.Subject,
	}

	if err := validateContact(contact); err != nil {
		return s.fail(result, errors.NewDeliveryError(contact.Email, err))
	}

	html, err := s.renderer.Render(contact)
	if err != nil {
		return s.fail(result, err)
	}
	text, err := s.renderer.RenderText(contact)
	if err != nil {
		return s.fail(result, err)
	}

	email := &Email{
		MessageID:   s.newMessageID(),
		FromAddress: s.config.FromAddress,
		FromName:    s.config.FromName,
		To:          strings.TrimSpace(contact.Email),
		Subject:     contact.Subject,
		HTML:        html,
		Text:        text,
	}

	if s.config.DryRun {
		s.logger.Info("Dry run, email not sent", map[string]interface{}{
			"to":        email.To,
			"subject":   email.Subject,
			"htmlBytes": len(html),
		})
		result.Status = models.DeliveryStatusSkipped
		result.Error = "dry run"
		return result
	}

	s.logger.Info("Sending email", map[string]interface{}{
		"to":      email.To,
		"subject": email.Subject,
	})

	sendCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	messageID, err := s.mailer.Send(sendCtx, email)
	if err != nil {
		return s.fail(result, errors.NewDeliveryError(email.To, err))
	}

	s.logger.Info("Email sent successfully", map[string]interface{}{
		"to":        email.To,
		"messageId": messageID,
	})

	result.Status = models.DeliveryStatusSent
	result.MessageID = messageID
	return result
}

func (s *Service) fail(result models.DeliveryResult, err error) models.DeliveryResult {
	fields := map[string]interface{}{
		"to":    result.Email,
		"error": err.Error(),
	}
	if stdErr, ok := errors.AsStandardError(err); ok {
		fields["code"] = string(stdErr.Code)
	}
	s.logger.Error("Failed to send email", fields)

	result.Status = models.DeliveryStatusFailed
	result.Error = err.Error()
	return result
}

func (s *Service) skipAll(input *Input, reason string) *Output {
	s.logger.Warn("Sending skipped", map[string]interface{}{
		"reason":     reason,
		"recipients": len(input.Contacts),
	})

	out := &Output{
		Provider:   s.providerName(),
		Skipped:    true,
		SkipReason: reason,
	}
	for _, c := range input.Contacts {
		s.logger.Info("Email not sent", map[string]interface{}{
			"to":      c.Email,
			"subject": c.Subject,
			"reason":  reason,
		})
		out.Results = append(out.Results, skippedResult(c, reason))
		metrics.EmailsProcessed.WithLabelValues(models.DeliveryStatusSkipped, out.Provider).Inc()
	}
	out.Summary = models.Summarize(out.Results)
	return out
}

func skippedResult(c models.RecommendedContact, reason string) models.DeliveryResult {
	return models.DeliveryResult{
		Name:    c.Name,
		Email:   c.Email,
		Subject: c.Subject,
		Status:  models.DeliveryStatusSkipped,
		Error:   reason,
	}
}

func (s *Service) providerName() string {
	if s.mailer != nil {
		return s.mailer.Provider()
	}
	return s.config.Provider
}

func (s *Service) newMessageID() string {
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), messageDomain(s.config.FromAddress))
}
