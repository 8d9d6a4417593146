// cmd/outreach/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"influencer-outreach/internal/common/config"
	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/gemini"
	commonhttp "influencer-outreach/internal/common/http"
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/common/metrics"
	"influencer-outreach/internal/common/observability"
	"influencer-outreach/internal/pipeline"

	rec "influencer-outreach/internal/workers/ai-conversation/recommend-influencers"
	es "influencer-outreach/internal/workers/communication/email-send"
	li "influencer-outreach/internal/workers/data-access/load-influencers"
	ri "influencer-outreach/internal/workers/infrastructure/render-invitation"
)

type flags struct {
	configPath string
	dataPath   string
	category   string
	k          int
	dryRun     bool
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "outreach",
		Short: "Shortlist influencers with a generative model and send invitations",
		Long: `outreach loads a table of influencers, asks for a category and a count K,
has the Gemini API rank the matching influencers and draft personalised
invitations, then mails them through SMTP or AWS SES.

Settings come from configs/config.yaml, variables.env/.env and the
environment (GEMINI_API_KEY, EMAIL_ADDRESS, EMAIL_PASSWORD, SMTP_HOST, SMTP_PORT).`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("k") && f.k < 1 {
				return fmt.Errorf("--k must be a positive integer")
			}
			return run(cmd.Context(), f, in, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a config file (default: configs/config.yaml)")
	cmd.Flags().StringVar(&f.dataPath, "data", "", "influencer data file (overrides data.path)")
	cmd.Flags().StringVar(&f.category, "category", "", "category to target (skips the prompt)")
	cmd.Flags().IntVar(&f.k, "k", 0, "number of top influencers to contact (skips the prompt)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "render every email but send none")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func loadConfig(f flags) (*config.LoadResult, error) {
	var (
		res *config.LoadResult
		err error
	)
	if f.configPath != "" {
		res, err = config.LoadFromFile(f.configPath)
	} else {
		res, err = config.Load()
	}
	if err != nil {
		return nil, errors.NewConfigurationInvalidError(err)
	}

	if f.dataPath != "" {
		res.Config.Data.Path = f.dataPath
	}
	if f.logLevel != "" {
		if err := config.ValidateLogLevel(f.logLevel); err != nil {
			return nil, errors.NewConfigurationInvalidError(fmt.Errorf("--log-level: %w", err))
		}
		res.Config.Logging.Level = f.logLevel
	}
	return res, nil
}

func run(parent context.Context, f flags, in io.Reader, out io.Writer) error {
	loaded, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return err
	}
	cfg := loaded.Config

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	runID := uuid.NewString()
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"app":   cfg.App.Name,
		"runId": runID,
	})

	zapLog.Info("Starting influencer outreach",
		zap.String("runId", runID),
		zap.String("configFile", loaded.ConfigFile),
		zap.String("envFile", loaded.EnvFile),
		zap.String("environment", cfg.App.Environment),
		zap.Bool("dryRun", f.dryRun),
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("Stage metrics disabled", map[string]interface{}{"error": err.Error()})
	}
	defer obs.Shutdown()

	deps, err := buildDependencies(ctx, cfg, f, log)
	if err != nil {
		log.Error("Startup failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	deps.Observability = obs
	deps.In = in
	deps.Out = out

	runner := pipeline.NewRunner(deps, pipeline.Options{Category: f.category, K: f.k})
	result, runErr := runner.Run(ctx)

	if err := metrics.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
		log.Warn("Metrics push failed", map[string]interface{}{"error": err.Error()})
	}

	if runErr != nil {
		fmt.Fprintf(out, "\nRun aborted: %v\n", runErr)
		return runErr
	}

	log.Info("Run finished", map[string]interface{}{
		"status":   result.Status,
		"category": result.Category,
		"k":        result.K,
		"matches":  result.Matches,
	})
	return nil
}

func buildDependencies(ctx context.Context, cfg *config.Config, f flags, log logger.Logger) (pipeline.Dependencies, error) {
	deps := pipeline.Dependencies{Logger: log}

	loadCfg := li.FromAppConfig(cfg.Data)
	if err := loadCfg.Validate(); err != nil {
		return deps, errors.NewConfigurationInvalidError(fmt.Errorf("data: %w", err))
	}
	deps.Loader = li.NewService(li.ServiceDependencies{Logger: log.With(map[string]interface{}{"stage": pipeline.StageLoad})}, loadCfg)

	if cfg.GenAI.APIKey != "" {
		recCfg := rec.FromAppConfig(cfg)
		if err := recCfg.Validate(); err != nil {
			return deps, errors.NewConfigurationInvalidError(fmt.Errorf("genai: %w", err))
		}
		httpClient := commonhttp.NewClient(recCfg.Timeout)
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:       cfg.GenAI.APIKey,
			Model:        cfg.GenAI.Model,
			BaseURL:      cfg.GenAI.BaseURL,
			Temperature:  cfg.GenAI.Temperature,
			JSONResponse: cfg.GenAI.JSONResponse,
			Timeout:      recCfg.Timeout,
		}, httpClient.Standard())
		if err != nil {
			return deps, errors.NewConfigurationInvalidError(err)
		}
		deps.Recommender = rec.NewService(rec.ServiceDependencies{
			Logger:    log.With(map[string]interface{}{"stage": pipeline.StageRecommend, "model": client.Model()}),
			Generator: client,
		}, recCfg)
	}

	renderCfg := ri.FromAppConfig(cfg)
	if err := renderCfg.Validate(); err != nil {
		return deps, errors.NewConfigurationInvalidError(fmt.Errorf("event: %w", err))
	}
	renderer, err := ri.NewRenderer(renderCfg)
	if err != nil {
		return deps, errors.NewConfigurationInvalidError(fmt.Errorf("template: %w", err))
	}

	sendCfg := es.FromAppConfig(cfg.Mail, f.dryRun)
	if err := sendCfg.Validate(); err != nil {
		return deps, errors.NewConfigurationInvalidError(fmt.Errorf("mail: %w", err))
	}
	var mailer es.Mailer
	if sendCfg.CredentialsConfigured && !sendCfg.DryRun {
		mailer, err = es.NewMailer(ctx, sendCfg)
		if err != nil {
			return deps, errors.NewConfigurationInvalidError(err)
		}
	}
	deps.Sender = es.NewService(es.ServiceDependencies{
		Logger:   log.With(map[string]interface{}{"stage": pipeline.StageOutreach}),
		Mailer:   mailer,
		Renderer: renderer,
	}, sendCfg)

	return deps, nil
}
