package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/complianceworks/geogate/internal/domain/glossary"
	"github.com/complianceworks/geogate/internal/infra/ai/prompt"
)

const defaultModel = "gpt-4-turbo"

// Config carries the hosted-backend settings. BaseURL is normally empty and
// exists so tests can point the client at a local server.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	api      *openai.Client
	model    string
	glossary *glossary.Glossary
}

func NewClient(cfg Config, gl *glossary.Glossary) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{api: openai.NewClientWithConfig(c), model: model, glossary: gl}, nil
}

func (c *Client) Classify(ctx context.Context, description string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.Build(c.glossary.Text(), description)},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
