package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/complianceworks/geogate/internal/domain/glossary"
	"github.com/complianceworks/geogate/internal/infra/ai/prompt"
)

const defaultModel = "deepseek-r1"

// Config carries the local-model-server settings.
type Config struct {
	ServerURL string
	Model     string
}

type Client struct {
	llm      *ollama.LLM
	glossary *glossary.Glossary
}

func NewClient(cfg Config, gl *glossary.Glossary) (*Client, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	opts := []ollama.Option{ollama.WithModel(model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}
	l, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init ollama: %w", err)
	}
	return &Client{llm: l, glossary: gl}, nil
}

func (c *Client) Classify(ctx context.Context, description string) (string, error) {
	p := prompt.GetSystemPrompt() + "\n\n" + prompt.Build(c.glossary.Text(), description)

	res, err := c.llm.Call(ctx, p, llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("ollama call failed: %w", err)
	}
	return strings.TrimSpace(res), nil
}
