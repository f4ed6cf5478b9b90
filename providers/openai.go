package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint,
// which covers llama.cpp, vLLM, and Ollama's compatibility layer.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	config  Config
	client  *http.Client
}

// NewOpenAIClient builds a client for the /v1/chat/completions API at
// baseURL. apiKey may be empty for unauthenticated local servers.
func NewOpenAIClient(baseURL, apiKey string, config Config, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		config:  config,
		client:  &http.Client{Timeout: timeout},
	}
}

// OpenAIFactory returns a cache factory producing OpenAI-compatible clients
// against one endpoint.
func OpenAIFactory(baseURL, apiKey string, timeout time.Duration) Factory {
	return func(config Config) (Client, error) {
		return NewOpenAIClient(baseURL, apiKey, config, timeout), nil
	}
}

type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Respond sends prompt as a single user-role message and returns the
// generated text.
func (c *OpenAIClient) Respond(ctx context.Context, prompt string) (*Response, error) {
	body, err := json.Marshal(openAIChatRequest{
		Model:       c.config.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return nil, generationErr(c.config.Model, "marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, generationErr(c.config.Model, "create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GenerationError{Model: c.config.Model, Err: err}
	}
	defer resp.Body.Close()

	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, generationErr(c.config.Model, "decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, generationErr(c.config.Model, "backend error: %s", out.Error.Message)
		}
		return nil, generationErr(c.config.Model, "backend returned %s", resp.Status)
	}
	if len(out.Choices) == 0 {
		return nil, generationErr(c.config.Model, "backend returned no choices")
	}

	result := &Response{
		Content:      out.Choices[0].Message.Content,
		Model:        out.Model,
		InputTokens:  out.Usage.PromptTokens,
		OutputTokens: out.Usage.CompletionTokens,
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
