package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/csv610/dialectica/philosophy"
)

// handleAbout describes the service and its current privacy configuration.
// Accept: application/json (or ?format=json) returns the same info as JSON.
func handleAbout(w http.ResponseWriter, r *http.Request) {
	isJSON := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.URL.Query().Get("format") == "json"

	toneNames := make([]string, 0, len(philosophy.Tones()))
	for _, t := range philosophy.Tones() {
		toneNames = append(toneNames, t.Name)
	}

	if isJSON {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"name":          "Dialectica",
			"description":   "Ask philosophical questions of a locally hosted model, in the tone you choose.",
			"tones":         toneNames,
			"categories":    philosophy.Categories,
			"audit_enabled": auditor != nil,
			"channels": map[string]bool{
				"http": appConfig.HTTPPort > 0,
				"ssh":  appConfig.SSHPort > 0,
				"dns":  appConfig.DNSPort > 0,
			},
			"generated_at": time.Now().Format(time.RFC3339),
		})
		return
	}

	auditNote := "Conversations are recorded to a local audit database."
	if auditor == nil {
		auditNote = "Conversation auditing is disabled. Nothing is stored beyond the in-memory history."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, htmlHeader)
	fmt.Fprintf(w, `<div class="layout"><main class="content">
    <div class="a">
        <h2>About</h2>
        <p>Dialectica answers philosophical questions through a locally hosted language model.
        Pick a tone in the sidebar and the question is rewritten so the model responds in that voice.
        Leave the tone on Neutral and your question goes through untouched.
        Turn on classification and each question is also filed under one of %d philosophical categories.</p>

        <h3>Tones</h3>
        <p>%s</p>

        <h3>Privacy</h3>
        <p>%s The in-memory history lives only as long as your session and the Clear History button empties it.</p>

        <h3>Other ways in</h3>
        <p><code>curl host/?q=what-is-justice</code> returns plain text.<br>
        <code>dig @host "what-is-justice" TXT</code> answers over DNS, truncated to fit TXT records.<br>
        <code>ssh host</code> opens an interactive prompt; type <code>/help</code> there for commands.</p>

        <p><a href="/">Back to the questions</a> | <a href="/about?format=json">JSON</a> | <a href="/health">Health</a></p>
    </div>
</main></div>`,
		len(philosophy.Categories),
		strings.Join(toneNames, ", "),
		auditNote)
	fmt.Fprint(w, htmlFooter)
}
