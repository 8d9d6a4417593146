// internal/pipeline/runner.go
package pipeline

import (
	"context"
	"io"
	"strconv"
	"strings"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/common/observability"
	"influencer-outreach/internal/models"
	recommendinfluencers "influencer-outreach/internal/workers/ai-conversation/recommend-influencers"
	emailsend "influencer-outreach/internal/workers/communication/email-send"
	loadinfluencers "influencer-outreach/internal/workers/data-access/load-influencers"
)

// Stage names used in logs and metrics.
const (
	StageLoad      = "load"
	StageSelect    = "select"
	StageRecommend = "recommend"
	StageOutreach  = "outreach"
)

// Run outcomes.
const (
	StatusCompleted         = "completed"
	StatusNoMatches         = "no_matches"
	StatusRecommendSkipped  = "recommendation_skipped"
	StatusNoRecommendations = "no_recommendations"
)

type Loader interface {
	Execute(ctx context.Context, input *loadinfluencers.Input) (*loadinfluencers.Output, error)
}

type Recommender interface {
	Execute(ctx context.Context, input *recommendinfluencers.Input) (*recommendinfluencers.Output, error)
}

type Sender interface {
	Execute(ctx context.Context, input *emailsend.Input) (*emailsend.Output, error)
}

// Options pre-answers the operator prompts. Zero values mean "ask".
type Options struct {
	Category string
	K        int
}

type Dependencies struct {
	Logger        logger.Logger
	Loader        Loader
	Recommender   Recommender // nil when no AI key is configured
	Sender        Sender
	Observability *observability.Observability
	In            io.Reader
	Out           io.Writer
}

// Result describes one finished run.
type Result struct {
	Status   string                      `json:"status"`
	Records  int                         `json:"records"`
	Category string                      `json:"category"`
	K        int                         `json:"k"`
	Matches  int                         `json:"matches"`
	Contacts []models.RecommendedContact `json:"contacts,omitempty"`
	Delivery *emailsend.Output           `json:"delivery,omitempty"`
}

// Runner drives load, selection, recommendation and outreach in order.
type Runner struct {
	logger      logger.Logger
	loader      Loader
	recommender Recommender
	sender      Sender
	obs         *observability.Observability
	errors      *errors.ErrorHandler
	prompter    *Prompter
	options     Options
}

func NewRunner(deps Dependencies, options Options) *Runner {
	return &Runner{
		logger:      deps.Logger,
		loader:      deps.Loader,
		recommender: deps.Recommender,
		sender:      deps.Sender,
		obs:         deps.Observability,
		errors:      errors.NewErrorHandler(deps.Logger),
		prompter:    NewPrompter(deps.In, deps.Out),
		options:     options,
	}
}

// Run executes the pipeline. Loader, selection and recommendation errors are
// terminal and returned as *errors.StandardError; delivery failures are only
// reflected in the result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	var loaded *loadinfluencers.Output
	err := r.obs.TimeStage(ctx, StageLoad, func() error {
		var err error
		loaded, err = r.loader.Execute(ctx, &loadinfluencers.Input{})
		return err
	})
	if err != nil {
		return nil, r.errors.Report(StageLoad, err)
	}
	result.Records = len(loaded.Records)
	r.prompter.Printf("Successfully loaded %d records from %s\n", len(loaded.Records), loaded.Path)

	if len(loaded.Records) == 0 {
		r.prompter.Printf("The data file contains no influencers.\n")
		result.Status = StatusNoMatches
		return result, nil
	}

	category, err := r.selectCategory(ctx, loaded.Records)
	if err != nil {
		return nil, r.errors.Report(StageSelect, err)
	}
	result.Category = category

	k, err := r.selectK(ctx)
	if err != nil {
		return nil, r.errors.Report(StageSelect, err)
	}
	result.K = k

	subset := loaded.Records.FilterByCategory(category)
	result.Matches = len(subset)
	r.logger.Info("Influencers selected", map[string]interface{}{
		"category": category,
		"k":        k,
		"matches":  len(subset),
	})
	if len(subset) == 0 {
		r.prompter.Printf("No influencers found in the '%s' category.\n", category)
		result.Status = StatusNoMatches
		return result, nil
	}

	if r.recommender == nil {
		r.logger.Warn("AI API key not configured, recommendation and outreach skipped", map[string]interface{}{
			"category": category,
			"matches":  len(subset),
		})
		r.prompter.Printf("\nAI API key is not configured; skipping recommendations and outreach.\n")
		r.obs.RecordStage(ctx, StageRecommend, 0, "skipped")
		result.Status = StatusRecommendSkipped
		return result, nil
	}

	r.prompter.Printf("\nSending data for %d influencers to the AI service...\n", len(subset))
	var recommended *recommendinfluencers.Output
	err = r.obs.TimeStage(ctx, StageRecommend, func() error {
		var err error
		recommended, err = r.recommender.Execute(ctx, &recommendinfluencers.Input{Records: subset, K: k})
		return err
	})
	if err != nil {
		stdErr := r.errors.Report(StageRecommend, err)
		if received, ok := stdErr.Metadata["received"].(string); ok {
			r.prompter.Printf("Received response:\n%s\n", received)
		}
		return nil, stdErr
	}
	result.Contacts = recommended.Contacts
	r.prompter.Printf("Successfully received %d recommendations from the AI.\n", len(recommended.Contacts))

	if len(recommended.Contacts) == 0 {
		result.Status = StatusNoRecommendations
		return result, nil
	}

	r.prompter.Printf("\nPreparing to send %d emails...\n", len(recommended.Contacts))
	var delivery *emailsend.Output
	err = r.obs.TimeStage(ctx, StageOutreach, func() error {
		var err error
		delivery, err = r.sender.Execute(ctx, &emailsend.Input{Contacts: recommended.Contacts})
		return err
	})
	result.Delivery = delivery
	if delivery != nil {
		printSummary(r.prompter, delivery)
	}
	if err != nil {
		return result, r.errors.Report(StageOutreach, err)
	}

	r.prompter.Printf("\nOutreach process complete.\n")
	result.Status = StatusCompleted
	return result, nil
}

func (r *Runner) selectCategory(ctx context.Context, records models.InfluencerSet) (string, error) {
	categories := records.Categories()
	r.prompter.Printf("\nAvailable Categories: %s\n", strings.Join(categories, ", "))

	if c := strings.TrimSpace(r.options.Category); c != "" {
		if records.HasCategory(c) {
			r.prompter.Printf("Using category: %s\n", c)
			return c, nil
		}
		r.prompter.Printf("Invalid category. Please choose from the list above.\n")
	}

	for {
		answer, err := r.prompter.Ask(ctx, "Enter the category you want to target: ")
		if err != nil {
			return "", err
		}
		if records.HasCategory(answer) {
			return answer, nil
		}
		r.prompter.Printf("Invalid category. Please choose from the list above.\n")
	}
}

func (r *Runner) selectK(ctx context.Context) (int, error) {
	if r.options.K > 0 {
		return r.options.K, nil
	}

	for {
		answer, err := r.prompter.Ask(ctx, "Enter the number of top influencers to contact (K): ")
		if err != nil {
			return 0, err
		}
		if k, err := strconv.Atoi(answer); err == nil && k >= 1 {
			return k, nil
		}
		r.prompter.Printf("Invalid number. Please enter a positive integer.\n")
	}
}
