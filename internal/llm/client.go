package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"domainbot/internal/config"
	"domainbot/internal/contextutil"
	"domainbot/internal/rag"

	"github.com/sashabaranov/go-openai"
)

const pingTimeout = 5 * time.Second

// Client generates answers through an OpenAI-compatible chat completions API.
type Client struct {
	client  *openai.Client
	params  Params
	timeout time.Duration
}

// NewClient creates a new LLM client.
func NewClient(cfg config.OpenAI) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.APIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, generation requests will fail")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		params:  DefaultParams(cfg.Model),
		timeout: timeout,
	}
}

// GenerateAnswer asks the model to answer userMessage using only contextText.
// The returned answer is cleaned but not yet checked for grounding.
func (c *Client) GenerateAnswer(ctx context.Context, userMessage, contextText string, sources []rag.SourceRef) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.params.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: BuildSystemPrompt(contextText, sources),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMessage,
			},
		},
		MaxTokens:   c.params.MaxTokens,
		Temperature: c.params.Temperature,
	}

	logger.InfoContext(ctx, "calling generator",
		"model", c.params.Model,
		"timeout", c.timeout,
		"message_length", len(userMessage),
		"context_length", len(contextText),
		"sources_count", len(sources),
	)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		err = classify(err)
		logger.ErrorContext(ctx, "generator call failed",
			"model", c.params.Model,
			"duration", time.Since(start),
			"error", err,
		)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrProvider)
	}

	answer := CleanAnswer(resp.Choices[0].Message.Content)
	logger.InfoContext(ctx, "generator call succeeded",
		"model", c.params.Model,
		"duration", time.Since(start),
		"answer_length", len(answer),
		"tokens_used", resp.Usage.TotalTokens,
	)
	return answer, nil
}

// Ping checks that the provider is reachable and the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.client.ListModels(ctxWithTimeout); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps provider errors onto ErrTimeout or ErrProvider.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}
