// Package providers implements chat-completion clients for locally hosted
// model backends, plus the keyed cache that memoizes their construction.
package providers

import (
	"context"
	"fmt"
)

// Config fixes the generation parameters a client is constructed with.
// Clients are cached per distinct Config; changing any field means a new
// client.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Message is one chat turn sent to a backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is the text a backend generated for one prompt. Token counts
// come from the backend when it reports them and are estimated otherwise.
type Response struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Client sends a single-turn prompt to a model backend. Calls are
// stateless: no conversation memory is kept between them.
type Client interface {
	Respond(ctx context.Context, prompt string) (*Response, error)
}

// GenerationError is the single error kind raised by backend calls. It does
// not distinguish fault subtypes and nothing is retried.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation with %s failed: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func generationErr(model string, format string, args ...interface{}) error {
	return &GenerationError{Model: model, Err: fmt.Errorf(format, args...)}
}
