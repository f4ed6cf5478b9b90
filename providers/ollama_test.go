package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv610/dialectica/providers"
)

func TestOllamaClientRespond(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":             "llama3.2",
			"message":           map[string]string{"role": "assistant", "content": "Virtue is a mean between extremes."},
			"done":              true,
			"prompt_eval_count": 21,
			"eval_count":        9,
		})
	}))
	defer backend.Close()

	client := providers.NewOllamaClient(backend.URL, providers.Config{
		Model:       "llama3.2",
		Temperature: 0.8,
		MaxTokens:   4000,
	}, 5*time.Second)

	resp, err := client.Respond(context.Background(), "What is virtue?")
	require.NoError(t, err)
	assert.Equal(t, "Virtue is a mean between extremes.", resp.Content)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.Equal(t, 21, resp.InputTokens)
	assert.Equal(t, 9, resp.OutputTokens)

	assert.Equal(t, "llama3.2", got["model"])
	assert.Equal(t, false, got["stream"])

	messages, ok := got["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "What is virtue?", first["content"])

	options, ok := got["options"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 0.8, options["temperature"], 1e-9)
	assert.EqualValues(t, 4000, options["num_predict"])
}

func TestOllamaClientBackendError(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "model 'nonsense' not found"})
	}))
	defer backend.Close()

	client := providers.NewOllamaClient(backend.URL, providers.Config{Model: "nonsense"}, 5*time.Second)
	_, err := client.Respond(context.Background(), "anything")
	require.Error(t, err)

	var genErr *providers.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "nonsense", genErr.Model)
	assert.Contains(t, genErr.Error(), "not found")
}

func TestOllamaClientConnectionRefused(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	client := providers.NewOllamaClient(backend.URL, providers.Config{Model: "llama3.2"}, time.Second)
	_, err := client.Respond(context.Background(), "anything")

	var genErr *providers.GenerationError
	require.ErrorAs(t, err, &genErr)
}
