// internal/workers/ai-conversation/recommend-influencers/prompt.go
package recommendinfluencers

import (
	"encoding/json"
	"fmt"
	"strings"

	"influencer-outreach/internal/common/config"
	"influencer-outreach/internal/models"
)

// BuildPrompt produces the ranking and drafting instruction for the model,
// followed by the candidate records as indented JSON. Records that cannot be
// encoded (non-finite numbers) are an error rather than an empty dataset.
func BuildPrompt(records models.InfluencerSet, k int, event config.EventConfig) (string, error) {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are a highly-discerning talent scout for '%s', a prestigious event hosted by %s.", event.Name, event.Host))
	parts = append(parts, "Your objective is to analyze the following list of influencers based on their data. "+
		"Your analysis should consider a holistic view: high follower count is good, but high engagement and follower growth are even better. "+
		"Calculate an internal 'overall_score' for each influencer to represent their potential impact and brand alignment for our event.")
	parts = append(parts, fmt.Sprintf("\nAfter scoring, identify the top %d influencers from the provided list.", k))
	parts = append(parts, fmt.Sprintf("\nFor ONLY these top %d influencers, you must generate a personalized email inviting them to be a featured guest.", k))
	parts = append(parts, "The tone must be professional, respectful, and convey the prestige of the event.")

	parts = append(parts, "\nEvent Details:")
	parts = append(parts, fmt.Sprintf("- Event Name: %s '%s'", event.Host, event.Name))
	if event.Location != "" {
		parts = append(parts, fmt.Sprintf("- Location: %s", event.Location))
	}
	if event.Theme != "" {
		parts = append(parts, fmt.Sprintf("- Theme: %s", event.Theme))
	}

	parts = append(parts, fmt.Sprintf("\nYour final output MUST be a single, valid JSON array containing exactly %d objects.", k))
	parts = append(parts, "Do not include any text, notes, or markdown formatting before or after the JSON array.")
	parts = append(parts, "Each object in the array must follow this exact structure:")
	parts = append(parts, "{")
	parts = append(parts, `  "name": "The influencer's full_name",`)
	parts = append(parts, `  "email": "The influencer's email address",`)
	parts = append(parts, `  "subject": "A compelling, personalized email subject line",`)
	parts = append(parts, fmt.Sprintf(`  "body": "%s"`, bodyInstruction(event)))
	parts = append(parts, "}")

	recordsJSON, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode influencer data: %w", err)
	}
	parts = append(parts, "\nHere is the influencer data in JSON format:")
	parts = append(parts, string(recordsJSON))

	return strings.Join(parts, "\n"), nil
}

func bodyInstruction(event config.EventConfig) string {
	return "The core message of the email ONLY. " +
		"It must not include a salutation (like 'Dear...') or a closing (like 'Regards...'), as those are already in the template. " +
		fmt.Sprintf("Start the body with a phrase like 'The %s team at %s has been following your work...' to set a formal tone. ", event.Name, event.Host) +
		"Reference their specific content category (e.g., 'your insightful content in the technology space'). " +
		"Explain why their voice is a perfect fit for our event. " +
		`The body must be a single string with newline characters (\n) for paragraph breaks ` +
		"and must not contain any placeholders like [Your Name] or [Your Title]."
}
