package generateproposal

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	apphttp "outreach-campaigns/internal/common/http"
)

// GenAIClient implements TextGenerator with the Gemini API.
type GenAIClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGenAIClient(ctx context.Context, config *Config) (*GenAIClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: apphttp.NewClient(config.Timeout, apphttp.DefaultUserAgent).HTTPClient(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
	}, nil
}

func (c *GenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
