package service

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-adp-api/pkg/errors"
)

// AssistantServiceConfig governs the LLM passthrough's endpoint and model.
type AssistantServiceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// AssistantService forwards free-text questions to a Groq-hosted,
// OpenAI-compatible chat completion endpoint. It carries no scheduling
// semantics of its own; it exists so operators can ask natural-language
// questions about a generated timetable from the same API surface.
type AssistantService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewAssistantService constructs the passthrough client.
func NewAssistantService(cfg AssistantServiceConfig, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "llama3-8b-8192"
	}
	return &AssistantService{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Ask sends a single-turn question and returns the model's reply text.
func (s *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "question must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		s.logger.Warn("assistant completion failed", zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "assistant request failed")
	}
	if len(resp.Choices) == 0 {
		return "", appErrors.Clone(appErrors.ErrInternal, "assistant returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
