package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csv610/dialectica/philosophy"
	"github.com/csv610/dialectica/providers"
)

// Auditor receives every completed entry for write-only retention. A nil
// auditor disables auditing.
type Auditor interface {
	RecordAsk(sessionID, channel string, entry Entry, prompt string)
}

// Ask is one question together with the configuration in force when it was
// asked.
type Ask struct {
	Question string
	Tone     philosophy.Tone
	Config   providers.Config
	Classify bool
	Channel  string
}

// Service orchestrates asks: optional classification call, tone-framed
// answer call, history append, audit hand-off.
type Service struct {
	clients  *providers.Cache
	recorder *Recorder
	auditor  Auditor
	logger   *slog.Logger
}

// NewService wires the orchestrator. auditor may be nil.
func NewService(clients *providers.Cache, recorder *Recorder, auditor Auditor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		clients:  clients,
		recorder: recorder,
		auditor:  auditor,
		logger:   logger,
	}
}

// Ask runs one attempt end to end and appends exactly one Entry to the
// session's history. Failures come back as failed entries, never as errors.
func (s *Service) Ask(ctx context.Context, session *Session, ask Ask) Entry {
	session.Touch()

	entry := Entry{
		ID:        uuid.NewString(),
		Question:  ask.Question,
		Tone:      ask.Tone.Name,
		Model:     ask.Config.Model,
		CreatedAt: time.Now(),
	}

	client, err := s.clients.Get(ask.Config)
	if err != nil {
		s.logger.Error("client construction failed", "model", ask.Config.Model, "error", err)
		entry.Answer = FailureMessage
		entry.Failed = true
		session.History.Append(entry)
		s.audit(session.ID, ask.Channel, entry, "")
		return entry
	}

	// One extra call before the answer; its failure leaves the label
	// empty rather than aborting the ask.
	if ask.Classify {
		classification := s.recorder.Generate(ctx, client, philosophy.ClassificationPrompt(ask.Question))
		if !classification.Failed {
			entry.Classification = strings.TrimSpace(classification.Output)
		}
	}

	prompt := philosophy.BuildPrompt(ask.Tone, ask.Question)
	gen := s.recorder.Generate(ctx, client, prompt)

	entry.Answer = gen.Output
	entry.Elapsed = gen.Elapsed
	entry.InputTokens = gen.InputTokens
	entry.OutputTokens = gen.OutputTokens
	entry.Failed = gen.Failed
	if gen.Model != "" {
		entry.Model = gen.Model
	}

	session.History.Append(entry)
	s.audit(session.ID, ask.Channel, entry, prompt)
	return entry
}

func (s *Service) audit(sessionID, channel string, entry Entry, prompt string) {
	if s.auditor == nil {
		return
	}
	s.auditor.RecordAsk(sessionID, channel, entry, prompt)
}
