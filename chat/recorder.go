package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/csv610/dialectica/providers"
)

// Generation is the tagged outcome of one timed adapter call. Failures are
// data, not errors: Failed is set, Reason keeps the cause, and Elapsed and
// the token counts stay zero.
type Generation struct {
	Input        string
	Output       string
	Model        string
	InputTokens  int
	OutputTokens int
	Elapsed      time.Duration
	Failed       bool
	Reason       string
}

// Recorder times adapter calls on the monotonic clock and converts their
// errors into failed Generations, logging the cause in full. No error and
// no panic escapes Generate.
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder builds a recorder logging to logger, or slog.Default when nil.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

// Generate sends input through client. Elapsed covers only the adapter
// call itself, never rendering or bookkeeping around it.
func (r *Recorder) Generate(ctx context.Context, client providers.Client, input string) Generation {
	start := time.Now()
	resp, err := client.Respond(ctx, input)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Error("generation failed", "error", err, "input_chars", len(input))
		return Generation{
			Input:  input,
			Output: FailureMessage,
			Failed: true,
			Reason: err.Error(),
		}
	}

	return Generation{
		Input:        input,
		Output:       resp.Content,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		Elapsed:      elapsed,
	}
}
