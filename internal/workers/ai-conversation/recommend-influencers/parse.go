// internal/workers/ai-conversation/recommend-influencers/parse.go
package recommendinfluencers

import (
	"encoding/json"
	"fmt"
	"strings"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/validation"
	"influencer-outreach/internal/models"
)

// GetResponseSchema describes the JSON array the model must return.
func GetResponseSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "array",
		Items: &validation.Property{
			Type:     "object",
			Required: []string{"name", "email", "subject", "body"},
			Properties: map[string]validation.Property{
				"name": {
					Type:        "string",
					Description: "Influencer full name",
					MinLength:   validation.IntPtr(1),
				},
				"email": {
					Type:        "string",
					Description: "Influencer email address",
					MinLength:   validation.IntPtr(1),
				},
				"subject": {
					Type:        "string",
					Description: "Email subject line",
					MinLength:   validation.IntPtr(1),
				},
				"body": {
					Type:        "string",
					Description: "Email body without salutation or closing",
					MinLength:   validation.IntPtr(1),
				},
			},
		},
	}
}

// CleanResponse strips markdown code fences and non-breaking spaces from
// the model text.
func CleanResponse(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(text)
}

// ParseRecommendations converts the model text into contacts. Any text that
// is not a JSON array of well-formed contact objects yields a
// MALFORMED_RESPONSE error and no contacts.
func ParseRecommendations(text string) ([]models.RecommendedContact, error) {
	cleaned := CleanResponse(text)
	if cleaned == "" {
		return nil, errors.NewMalformedResponseError("response is empty", text)
	}

	var document interface{}
	if err := json.Unmarshal([]byte(cleaned), &document); err != nil {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("invalid JSON: %v", err), text)
	}

	result, err := validation.ValidateDocument(document, GetResponseSchema())
	if err != nil {
		return nil, errors.NewMalformedResponseError(err.Error(), text)
	}
	if !result.Valid {
		return nil, errors.NewMalformedResponseError(result.Error(), text)
	}

	var contacts []models.RecommendedContact
	if err := json.Unmarshal([]byte(cleaned), &contacts); err != nil {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("decode contacts: %v", err), text)
	}
	if contacts == nil {
		contacts = []models.RecommendedContact{}
	}
	return contacts, nil
}
