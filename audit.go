package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csv610/dialectica/chat"
)

// askAuditor retains every completed ask in a local SQLite database. It is
// a write-only side channel: nothing in the serving path reads it back.
type askAuditor struct {
	db     *sql.DB
	logger *slog.Logger
}

const askAuditSchema = `
CREATE TABLE IF NOT EXISTS ask_audit (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	session_id TEXT NOT NULL,
	channel TEXT NOT NULL,
	model TEXT NOT NULL,
	tone TEXT,
	classification TEXT,
	question_sha TEXT NOT NULL,
	question TEXT NOT NULL,
	prompt TEXT NOT NULL,
	answer TEXT NOT NULL,
	input_tokens INTEGER,
	output_tokens INTEGER,
	elapsed_ms INTEGER,
	failed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_ask_session ON ask_audit(session_id);
CREATE INDEX IF NOT EXISTS idx_ask_timestamp ON ask_audit(timestamp);
CREATE INDEX IF NOT EXISTS idx_ask_question_sha ON ask_audit(question_sha);
`

// newAskAuditor opens (or creates) the audit database at path.
func newAskAuditor(path string, logger *slog.Logger) (*askAuditor, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(askAuditSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit schema: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &askAuditor{db: db, logger: logger.With("component", "audit")}, nil
}

// RecordAsk implements chat.Auditor. Insert failures are logged and
// swallowed so auditing can never break an ask.
func (a *askAuditor) RecordAsk(sessionID, channel string, entry chat.Entry, prompt string) {
	failed := 0
	if entry.Failed {
		failed = 1
	}
	_, err := a.db.Exec(`
		INSERT INTO ask_audit (
			session_id, channel, model, tone, classification,
			question_sha, question, prompt, answer,
			input_tokens, output_tokens, elapsed_ms, failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, channel, entry.Model, entry.Tone, entry.Classification,
		generateSignature(entry.Question), entry.Question, prompt, entry.Answer,
		entry.InputTokens, entry.OutputTokens, entry.Elapsed.Milliseconds(), failed)
	if err != nil {
		a.logger.Error("audit insert failed", "error", err)
	}
}

// Close releases the underlying database.
func (a *askAuditor) Close() error {
	return a.db.Close()
}
