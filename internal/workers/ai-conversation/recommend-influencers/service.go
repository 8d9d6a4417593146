// internal/workers/ai-conversation/recommend-influencers/service.go
package recommendinfluencers

import (
	"context"
	"fmt"
	"time"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/common/metrics"
)

const upstreamService = "gemini"

type Service struct {
	config    *Config
	logger    logger.Logger
	generator TextGenerator
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:    config,
		logger:    deps.Logger,
		generator: deps.Generator,
	}
}

// Execute asks the model for the top K records and the drafted emails.
// Upstream and parse failures are terminal for the run.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.K < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", input.K)
	}
	if len(input.Records) == 0 {
		return nil, fmt.Errorf("no records to rank")
	}

	s.logger.Info("Requesting influencer recommendations", map[string]interface{}{
		"records": len(input.Records),
		"k":       input.K,
	})

	prompt, err := BuildPrompt(input.Records, input.K, s.config.Event)
	if err != nil {
		s.logger.Error("Failed to build recommendation prompt", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	text, err := s.generator.GenerateText(ctx, prompt)
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("upstream_error").Inc()
		return nil, errors.NewUpstreamError(upstreamService, err).
			WithMetadata("timeout", s.config.Timeout.String())
	}

	contacts, err := ParseRecommendations(text)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("malformed").Inc()
		return nil, err
	}
	metrics.RecommendationRequests.WithLabelValues("success").Inc()

	if len(contacts) != input.K {
		s.logger.Warn("Recommendation count differs from requested", map[string]interface{}{
			"requested": input.K,
			"received":  len(contacts),
		})
	}

	s.logger.Info("Recommendations received", map[string]interface{}{
		"received":   len(contacts),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &Output{
		Contacts:  contacts,
		Requested: input.K,
		Received:  len(contacts),
	}, nil
}
