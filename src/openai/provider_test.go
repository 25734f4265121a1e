package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"autotranslate/src/openai"
)

func TestProviderTranslate(t *testing.T) {
	var got goopenai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"<5>bonjour</5>"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p, err := openai.NewProvider(openai.Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/v1",
		Temperature: openai.DefaultTemperature,
	})
	require.NoError(t, err)

	out, err := p.Translate(context.Background(), "instruction", "Parameters:", "<5>hello</5>")
	require.NoError(t, err)
	require.Equal(t, "<5>bonjour</5>", out)

	require.Equal(t, openai.DefaultModel, got.Model)
	require.InDelta(t, 0.5, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 3)
	require.Equal(t, goopenai.ChatMessageRoleSystem, got.Messages[0].Role)
	require.Equal(t, "instruction", got.Messages[0].Content)
	require.Equal(t, goopenai.ChatMessageRoleSystem, got.Messages[1].Role)
	require.Equal(t, "Parameters:", got.Messages[1].Content)
	require.Equal(t, goopenai.ChatMessageRoleUser, got.Messages[2].Role)
	require.Equal(t, "<5>hello</5>", got.Messages[2].Content)
}

func TestProviderTranslateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p, err := openai.NewProvider(openai.Config{APIKey: "bad", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = p.Translate(context.Background(), "s", "p", "hello")
	var apiErr *goopenai.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
}

func TestProviderTranslateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	p, err := openai.NewProvider(openai.Config{APIKey: "k", BaseURL: srv.URL + "/v1", Model: "m"})
	require.NoError(t, err)

	_, err = p.Translate(context.Background(), "s", "p", "hello")
	require.EqualError(t, err, "no response from OpenAI")
}

func TestNewProviderRequiresKey(t *testing.T) {
	_, err := openai.NewProvider(openai.Config{})
	require.Error(t, err)
}
