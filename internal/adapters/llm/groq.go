package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient implements domain.CompletionClient against Groq's
// OpenAI-compatible chat completions API.
type GroqClient struct {
	client *openai.Client
}

// NewGroqClient creates a Groq-backed completion client. baseURL may be empty
// to use the public Groq endpoint.
func NewGroqClient(apiKey, baseURL string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &GroqClient{client: openai.NewClientWithConfig(cfg)}, nil
}

// Complete implements domain.CompletionClient.
func (c *GroqClient) Complete(
	ctx context.Context,
	turns []domain.ChatTurn,
	opts domain.CompletionOptions,
) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.ForceJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
