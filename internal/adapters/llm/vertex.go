package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/lockedin/taskplan-agent/internal/domain"
)

// VertexClient implements domain.CompletionClient on Vertex AI (Gemini), as an
// alternative backend to Groq.
type VertexClient struct {
	client *genai.Client
}

// NewVertexClient creates a Vertex AI completion client for the given project
// and location.
func NewVertexClient(ctx context.Context, projectID, location string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("projectID and location are required for Vertex AI")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{client: client}, nil
}

// Complete implements domain.CompletionClient. The system turn becomes the
// model's system instruction; user and assistant turns map to the user and
// model roles.
func (v *VertexClient) Complete(
	ctx context.Context,
	turns []domain.ChatTurn,
	opts domain.CompletionOptions,
) (string, error) {
	var system *genai.Content
	var contents []*genai.Content

	for _, t := range turns {
		switch t.Role {
		case domain.RoleSystem:
			system = genai.NewContentFromText(t.Content, genai.RoleUser)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(t.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(t.Content, genai.RoleUser))
		}
	}

	temp := opts.Temperature

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       &temp,
		MaxOutputTokens:   int32(opts.MaxTokens),
	}
	if opts.ForceJSON {
		cfg.ResponseMIMEType = "application/json"
	}

	res, err := v.client.Models.GenerateContent(ctx, opts.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	return res.Text(), nil
}
