// Package chat implements the conversation core shared by every front end:
// timed model calls, tagged result entries, per-session history, and the
// ask orchestration.
package chat

import (
	"strings"
	"time"
)

// FailureMessage is the only text users see when generation fails.
const FailureMessage = "Sorry, I couldn't generate a response."

// Entry is one completed ask attempt. Exactly one Entry is appended to a
// session's history per attempt, successful or failed. Failed entries carry
// FailureMessage as the answer and zeroed timing and token counts.
type Entry struct {
	ID             string
	Question       string
	Tone           string
	Classification string
	Answer         string
	Model          string
	InputTokens    int
	OutputTokens   int
	Elapsed        time.Duration
	CreatedAt      time.Time
	Failed         bool
}

// Words counts whitespace-separated words in the answer.
func (e Entry) Words() int {
	return len(strings.Fields(e.Answer))
}
