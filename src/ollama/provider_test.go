package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/require"

	"autotranslate/src/ollama"
)

func TestOllamaProviderTranslate(t *testing.T) {
	var got api.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":"<0>Hola</0>"},"done":false}` + "\n"))
		_, _ = w.Write([]byte(`{"model":"llama3","created_at":"2024-01-01T00:00:01Z","message":{"role":"assistant","content":"\n<1>mundo</1>"},"done":true,"done_reason":"stop"}` + "\n"))
	}))
	defer srv.Close()

	p, err := ollama.NewOllamaProvider(srv.URL, "llama3", srv.Client(), 0.5)
	require.NoError(t, err)

	out, err := p.Translate(context.Background(), "instruction", "Parameters:", "<0>Hello</0>\n<1>world</1>")
	require.NoError(t, err)
	require.Equal(t, "<0>Hola</0>\n<1>mundo</1>", out)

	require.Equal(t, "llama3", got.Model)
	require.NotNil(t, got.Stream)
	require.False(t, *got.Stream)
	require.Len(t, got.Messages, 3)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "instruction", got.Messages[0].Content)
	require.Equal(t, "system", got.Messages[1].Role)
	require.Equal(t, "user", got.Messages[2].Role)
	require.InDelta(t, 0.5, got.Options["temperature"], 0.0001)
}

func TestOllamaProviderTranslateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"missing\" not found"}`))
	}))
	defer srv.Close()

	p, err := ollama.NewOllamaProvider(srv.URL, "missing", srv.Client(), 0.5)
	require.NoError(t, err)

	_, err = p.Translate(context.Background(), "s", "p", "hello")
	require.ErrorContains(t, err, "not found")
}
