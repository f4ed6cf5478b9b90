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

func TestOpenAIClientRespond(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"model": "llama3.1",
			"choices": []map[string]interface{}{
				{
					"message":       map[string]string{"role": "assistant", "content": "Knowledge is justified true belief, with caveats."},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]int{
				"prompt_tokens":     14,
				"completion_tokens": 8,
				"total_tokens":      22,
			},
		})
	}))
	defer backend.Close()

	client := providers.NewOpenAIClient(backend.URL, "sk-test", providers.Config{
		Model:       "llama3.1",
		Temperature: 0.5,
		MaxTokens:   2000,
	}, 5*time.Second)

	resp, err := client.Respond(context.Background(), "What is knowledge?")
	require.NoError(t, err)
	assert.Equal(t, "Knowledge is justified true belief, with caveats.", resp.Content)
	assert.Equal(t, 14, resp.InputTokens)
	assert.Equal(t, 8, resp.OutputTokens)

	assert.Equal(t, "llama3.1", got["model"])
	assert.InDelta(t, 0.5, got["temperature"], 1e-9)
	assert.EqualValues(t, 2000, got["max_tokens"])
}

func TestOpenAIClientErrorBody(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "max_tokens too large"},
		})
	}))
	defer backend.Close()

	client := providers.NewOpenAIClient(backend.URL, "", providers.Config{Model: "llama3.1"}, 5*time.Second)
	_, err := client.Respond(context.Background(), "anything")

	var genErr *providers.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "max_tokens too large")
}

func TestOpenAIClientNoChoices(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer backend.Close()

	client := providers.NewOpenAIClient(backend.URL, "", providers.Config{Model: "llama3.1"}, 5*time.Second)
	_, err := client.Respond(context.Background(), "anything")
	require.Error(t, err)
}
