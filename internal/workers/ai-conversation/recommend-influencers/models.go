// internal/workers/ai-conversation/recommend-influencers/models.go
package recommendinfluencers

import (
	"context"

	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/models"
)

type Input struct {
	Records models.InfluencerSet `json:"records"`
	K       int                  `json:"k"`
}

type Output struct {
	Contacts  []models.RecommendedContact `json:"contacts"`
	Requested int                         `json:"requested"`
	Received  int                         `json:"received"`
}

// TextGenerator sends one prompt to a generative model and returns its
// text answer.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Generator TextGenerator
}
