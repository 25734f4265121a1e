package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"autotranslate/src/log"
)

const (
	DefaultURL = "http://localhost:11434"
)

// OllamaProvider translates batches with a local model through the Ollama
// chat endpoint.
type OllamaProvider struct {
	client    *api.Client
	modelName string
	options   map[string]interface{}
}

func NewOllamaProvider(baseURL, modelName string, httpClient *http.Client, temperature float32) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OllamaProvider{
		client:    api.NewClient(u, httpClient),
		modelName: modelName,
		options: map[string]interface{}{
			"temperature": temperature,
		},
	}, nil
}

func (o *OllamaProvider) Translate(ctx context.Context, system, parameters, payload string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: o.modelName,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "system", Content: parameters},
			{Role: "user", Content: payload},
		},
		Stream:  &stream,
		Options: o.options,
	}

	var out strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		if resp.Done {
			log.Debug("ollama chat done", "model", resp.Model, "reason", resp.DoneReason)
		}
		return nil
	})
	if err != nil {
		log.Error(err, "failed to chat with ollama", "model", o.modelName)
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return out.String(), nil
}
