package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitforge/internal/core/ai/provider"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	var got api.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3.2","message":{"role":"assistant","content":"Rest 90 seconds."},"done":true,"prompt_eval_count":10,"eval_count":5}` + "\n"))
	}))
	defer srv.Close()

	client, err := NewClient(provider.Config{Model: "llama3.2", Timeout: 5 * time.Second, BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), &provider.Request{
		System:      "You are a coach.",
		Messages:    []provider.Message{{Role: provider.RoleUser, Content: "Rest time?"}},
		Temperature: 0.2,
		MaxTokens:   64,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rest 90 seconds.", resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	assert.Equal(t, "llama3.2", got.Model)
	require.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "Rest time?", got.Messages[1].Content)
	assert.EqualValues(t, 64, got.Options["num_predict"])
}

func TestClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"missing\" not found"}` + "\n"))
	}))
	defer srv.Close()

	client, err := NewClient(provider.Config{Model: "missing", Timeout: time.Second, BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), &provider.Request{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: "Hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNewClient_InvalidHost(t *testing.T) {
	_, err := NewClient(provider.Config{BaseURL: "://bad"})
	assert.Error(t, err)
}
