// internal/common/gemini/client.go
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("gemini returned no text")

type Config struct {
	APIKey       string
	Model        string
	BaseURL      string // empty = public Gemini endpoint
	Temperature  float64
	JSONResponse bool
	Timeout      time.Duration
}

// Client sends single-turn text prompts to the Gemini generateContent API.
type Client struct {
	client    *genai.Client
	model     string
	genConfig *genai.GenerateContentConfig
}

// NewClient creates a Gemini client. httpClient may be nil.
func NewClient(ctx context.Context, cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		cc.HTTPOptions.Timeout = genai.Ptr(cfg.Timeout)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(cfg.Temperature)),
	}
	if cfg.JSONResponse {
		genConfig.ResponseMIMEType = "application/json"
	}

	return &Client{
		client:    client,
		model:     cfg.Model,
		genConfig: genConfig,
	}, nil
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// GenerateText issues one blocking generateContent call and returns the
// text of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genConfig)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			return "", fmt.Errorf("%w (finish reason %s)", ErrEmptyResponse, resp.Candidates[0].FinishReason)
		}
		return "", ErrEmptyResponse
	}
	return text, nil
}
