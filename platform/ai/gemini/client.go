// Package gemini provides a thin text-completion client over the Gemini API.
// This is part of the platform layer and contains no business logic.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Completer is the text-completion collaborator contract. Output is
// non-deterministic and possibly malformed; callers own parsing and fallback.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config for the Gemini completion client.
type Config struct {
	APIKey string
	Model  string
}

// Client implements Completer against the Gemini API.
type Client struct {
	config Config
	client *genai.Client
}

// NewClient creates a Gemini completion client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{config: cfg, client: client}, nil
}

// Complete sends one prompt pair and returns the model's text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	}
	if strings.TrimSpace(systemPrompt) != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(userPrompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini completion: empty response")
	}
	return text, nil
}

var _ Completer = (*Client)(nil)
