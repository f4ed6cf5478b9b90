package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// DefaultOllamaURL is where a locally installed Ollama server listens.
const DefaultOllamaURL = "http://localhost:11434"

// OllamaClient talks to an Ollama server over its native chat API.
type OllamaClient struct {
	baseURL string
	config  Config
	client  *http.Client
}

// NewOllamaClient builds a client bound to the generation parameters in
// config. An empty baseURL falls back to DefaultOllamaURL.
func NewOllamaClient(baseURL string, config Config, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	return &OllamaClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		config:  config,
		client:  &http.Client{Timeout: timeout},
	}
}

// OllamaFactory returns a cache factory producing Ollama clients against
// one base URL.
func OllamaFactory(baseURL string, timeout time.Duration) Factory {
	return func(config Config) (Client, error) {
		return NewOllamaClient(baseURL, config, timeout), nil
	}
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatResponse struct {
	Model           string  `json:"model"`
	Message         Message `json:"message"`
	Done            bool    `json:"done"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
	Error           string  `json:"error"`
}

// Respond sends prompt as a single user-role message and returns the
// generated text.
func (c *OllamaClient) Respond(ctx context.Context, prompt string) (*Response, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model:    c.config.Model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   false,
		Options: ollamaOptions{
			Temperature: c.config.Temperature,
			NumPredict:  c.config.MaxTokens,
		},
	})
	if err != nil {
		return nil, generationErr(c.config.Model, "marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, generationErr(c.config.Model, "create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GenerationError{Model: c.config.Model, Err: err}
	}
	defer resp.Body.Close()

	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, generationErr(c.config.Model, "decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return nil, generationErr(c.config.Model, "backend error: %s", out.Error)
		}
		return nil, generationErr(c.config.Model, "backend returned %s", resp.Status)
	}

	result := &Response{
		Content:      out.Message.Content,
		Model:        out.Model,
		InputTokens:  out.PromptEvalCount,
		OutputTokens: out.EvalCount,
	}
	if result.Model == "" {
		result.Model = c.config.Model
	}
	if result.InputTokens == 0 {
		result.InputTokens = CountTokens(prompt)
	}
	if result.OutputTokens == 0 {
		result.OutputTokens = CountTokens(result.Content)
	}
	return result, nil
}
