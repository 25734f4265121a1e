package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.5
)

// Config holds the settings for the OpenAI chat completions translator.
type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a compatible proxy.
	BaseURL     string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
}

// Provider translates batches with OpenAI chat completions.
type Provider struct {
	client      *goopenai.Client
	model       string
	temperature float32
}

func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key is not set")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	return &Provider{
		client:      goopenai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Translate sends the instruction and parameters as system messages and the
// payload as the user message.
func (p *Provider) Translate(ctx context.Context, system, parameters, payload string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: p.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleSystem, Content: parameters},
			{Role: goopenai.ChatMessageRoleUser, Content: payload},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
