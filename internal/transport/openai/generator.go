package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/solistra/askdex/internal/domain"
	"github.com/solistra/askdex/internal/metrics"
)

// Answer sampling parameters, fixed by product contract.
const (
	answerTemperature = 0.3
	answerMaxTokens   = 500
)

// Generator produces answers via an OpenAI-compatible chat-completion API,
// plain or Azure-hosted. Built once at startup; safe for concurrent use.
type Generator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the completion backend settings.
type Config struct {
	APIType    string // "openai" or "azure"
	APIKey     string
	BaseURL    string
	APIVersion string // azure only
	Deployment string // azure only
	Model      string
	Logger     *zap.Logger
}

// NewGenerator creates a completion client from an immutable config.
func NewGenerator(cfg *Config) *Generator {
	var clientCfg openai.ClientConfig
	switch cfg.APIType {
	case "azure":
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		if cfg.Deployment != "" {
			deployment := cfg.Deployment
			clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
		}
	default:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Complete sends the system and user messages and returns the first choice's
// content, with transport-level metrics. Failures wrap domain.ErrGenerationFailed.
func (g *Generator) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, "error").Inc()
		return "", fmt.Errorf("no choices in completion response: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.model).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(g.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(g.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrGenerationFailed for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrGenerationFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractMessage(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %w", wrap)
}

// extractMessage extracts the error.message field from a JSON error body.
func extractMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return ""
}
