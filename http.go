package main

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/csv610/dialectica/chat"
	"github.com/csv610/dialectica/philosophy"
	"github.com/csv610/dialectica/providers"
)

// isBrowserUA checks if the user agent appears to be from a web browser
func isBrowserUA(ua string) bool {
	ua = strings.ToLower(ua)
	browserIndicators := []string{
		"mozilla", "msie", "trident", "edge", "chrome", "safari",
		"firefox", "opera", "webkit", "gecko", "khtml",
	}
	for _, indicator := range browserIndicators {
		if strings.Contains(ua, indicator) {
			return true
		}
	}
	return false
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
    <title>Dialectica</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; font-family: system-ui, -apple-system, sans-serif; background: #FFF8F0; color: #2C1F3D; }
        header { text-align: center; padding: 1.5rem 1rem 0.5rem; }
        header h1 { margin: 0; color: #6B4C8A; }
        header p { margin: 0.25rem 0 0; color: #5A3D79; font-style: italic; }
        .layout { display: flex; gap: 1.5rem; max-width: 1100px; margin: 1rem auto 3rem; padding: 0 1rem; align-items: flex-start; }
        .sidebar {
            flex: 0 0 260px;
            background: #FFFBF5;
            border: 1px solid #E8DCC4;
            border-radius: 12px;
            padding: 1.25rem;
        }
        .sidebar h2 { margin: 0 0 1rem; font-size: 1.1rem; color: #6B4C8A; }
        .sidebar label { display: block; margin: 0.75rem 0 0.25rem; font-size: 0.85rem; font-weight: 600; }
        .sidebar select, .sidebar input[type="number"] {
            width: 100%;
            padding: 0.4rem 0.5rem;
            border: 2px solid #E8DCC4;
            border-radius: 8px;
            background: white;
            box-sizing: border-box;
        }
        .sidebar .check { margin-top: 1rem; font-weight: 400; }
        .sidebar .check input { width: auto; margin-right: 0.4rem; }
        .tone-desc { font-size: 0.8rem; color: #5A3D79; background: #F3EBDD; padding: 0.5rem; border-radius: 8px; margin: 0.5rem 0 0; }
        .actions { display: flex; flex-direction: column; gap: 0.5rem; margin-top: 1.25rem; }
        .actions button {
            padding: 0.5rem 0.75rem;
            font-size: 0.9rem;
            background: #FFFBF5;
            color: #6B4C8A;
            border: 2px solid #6B4C8A;
            border-radius: 8px;
            cursor: pointer;
        }
        .actions button:hover { background: #6B4C8A; color: white; }
        .now { font-size: 0.75rem; color: #8A7A9B; margin: 1rem 0 0; }
        .content { flex: 1; min-width: 0; }
        .ask { display: flex; gap: 0.5rem; margin-bottom: 1.5rem; }
        .ask input[type="text"] {
            width: 100%;
            padding: 1rem 1.25rem;
            font-size: 1.1rem;
            border: 3px solid #6B4C8A;
            border-radius: 12px;
            background: #FFFBF5;
            outline: none;
        }
        .ask input[type="text"]:focus { border-color: #5A3D79; background: white; box-shadow: 0 0 0 3px rgba(107, 76, 138, 0.1); }
        .ask button {
            padding: 1rem 2rem;
            font-size: 1rem;
            font-weight: 600;
            background: #6B4C8A;
            color: white;
            border: none;
            border-radius: 10px;
            cursor: pointer;
            min-width: 100px;
        }
        .ask button:hover { background: #5A3D79; }
        .entry { margin-bottom: 1.5rem; }
        .q { padding: 1rem 1.25rem; background: #E8DCC4; font-style: italic; border-left: 4px solid #6B4C8A; border-radius: 0 8px 8px 0; }
        .a {
            padding: 1.25rem;
            background: #FFFBF5;
            margin: 0.5rem 0 0.25rem;
            border-radius: 8px;
            border: 1px solid #E8DCC4;
            white-space: pre-wrap;
        }
        .a.failed { border-color: #C0392B; background: #FDF3F2; color: #7B241C; }
        .meta { font-size: 0.78rem; color: #8A7A9B; padding: 0 0.25rem; }
        .badge { display: inline-block; background: #6B4C8A; color: white; border-radius: 6px; padding: 0.05rem 0.45rem; font-size: 0.72rem; }
        footer { text-align: center; font-size: 0.8rem; color: #8A7A9B; padding: 1rem; }
        footer a { color: #6B4C8A; }
        @media (max-width: 760px) { .layout { flex-direction: column; } .sidebar { flex: none; width: auto; } }
    </style>
</head>
<body>
<header>
    <h1>Dialectica</h1>
    <p>philosophical questions, answered in the tone you choose</p>
</header>
`

const htmlFooter = `<footer>
    Also available: ssh -p 2222 host | curl host/?q=hello | dig @host "what-is-justice" TXT | <a href="/about">about</a>
</footer>
</body>
</html>
`

// controlState is what the sidebar carried on the last submit; it seeds the
// next render so selections stick across round trips.
type controlState struct {
	Config   providers.Config
	Tone     philosophy.Tone
	Classify bool
	Question string
}

func defaultControls() controlState {
	return controlState{
		Config:   catalog.DefaultConfig(),
		Tone:     philosophy.Neutral,
		Classify: true,
	}
}

// controlsFromRequest reads the sidebar fields from a parsed form or query,
// clamping everything through the catalog. Absent fields keep defaults.
func controlsFromRequest(r *http.Request) controlState {
	state := defaultControls()

	get := func(key string) string {
		if r.Method == http.MethodPost {
			return r.FormValue(key)
		}
		return r.URL.Query().Get(key)
	}

	if model := get("model"); model != "" {
		state.Config.Model = model
	}
	if raw := get("temperature"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			state.Config.Temperature = v
		}
	}
	if raw := get("max_tokens"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			state.Config.MaxTokens = v
		}
	}
	state.Config = catalog.Clamp(state.Config)

	if name := get("tone"); name != "" {
		if tone, ok := philosophy.ToneByName(name); ok {
			state.Tone = tone
		}
	}
	// The checkbox only travels when checked, so POSTs decide from its
	// presence; bare GETs keep the default unless asked explicitly.
	if r.Method == http.MethodPost {
		state.Classify = r.FormValue("classify") == "on"
	} else if raw := get("classify"); raw != "" {
		state.Classify = raw == "on" || raw == "true" || raw == "1"
	}

	return state
}

func StartHTTPServer(port int) error {
	http.HandleFunc("/", handleRoot)
	http.HandleFunc("/clear", handleClear)
	http.HandleFunc("/random", handleRandom)
	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/api/models", handleModels)
	http.HandleFunc("/about", handleAbout)

	addr := fmt.Sprintf(":%d", port)
	slog.Info("http server listening", "component", "http", "addr", addr)
	return http.ListenAndServe(addr, nil)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/favicon.ico" {
		http.NotFound(w, r)
		return
	}

	if !rateLimitAllow(r.RemoteAddr) {
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var question string
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		question = r.FormValue("q")
	} else {
		question = r.URL.Query().Get("q")
		// Support path-based questions like /what-is-justice
		if question == "" && r.URL.Path != "/" {
			question = strings.ReplaceAll(strings.TrimPrefix(r.URL.Path, "/"), "-", " ")
		}
	}
	question = strings.TrimSpace(question)

	accept := r.Header.Get("Accept")
	userAgent := strings.ToLower(r.Header.Get("User-Agent"))
	wantsJSON := strings.Contains(accept, "application/json")
	wantsHTML := isBrowserUA(userAgent) || strings.Contains(accept, "text/html")

	state := controlsFromRequest(r)
	state.Question = question

	if question == "" {
		if wantsHTML && !wantsJSON {
			session := sessions.get(w, r)
			renderPage(w, session, state)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Usage: curl host/?q=your-question or dig @host \"your-question\" TXT")
		return
	}

	channel := "curl"
	switch {
	case wantsJSON:
		channel = "json"
	case wantsHTML:
		channel = "http"
	}

	var session *chat.Session
	if channel == "http" {
		session = sessions.get(w, r)
	} else {
		session = chat.NewSession()
	}

	entry := service.Ask(r.Context(), session, chat.Ask{
		Question: question,
		Tone:     state.Tone,
		Config:   state.Config,
		Classify: state.Classify,
		Channel:  channel,
	})

	slog.Info("ask handled",
		"component", "http",
		"channel", channel,
		"question_sha", generateSignature(question),
		"model", entry.Model,
		"tone", entry.Tone,
		"elapsed_ms", entry.Elapsed.Milliseconds(),
		"failed", entry.Failed)

	switch channel {
	case "json":
		writeEntryJSON(w, entry)
	case "http":
		state.Question = ""
		renderPage(w, session, state)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, entry.Answer)
	}
}

func handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	session := sessions.get(w, r)
	session.History.Clear()
	slog.Info("history cleared", "component", "http", "session", session.ID)

	renderPage(w, session, controlsFromRequest(r))
}

func handleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	session := sessions.get(w, r)
	state := controlsFromRequest(r)
	if questions != nil {
		state.Question = questions.Random()
	}
	renderPage(w, session, state)
}

func writeEntryJSON(w http.ResponseWriter, entry chat.Entry) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	out := map[string]interface{}{
		"question":        entry.Question,
		"answer":          entry.Answer,
		"model":           entry.Model,
		"elapsed_seconds": entry.Elapsed.Seconds(),
		"failed":          entry.Failed,
	}
	if entry.Classification != "" {
		out["classification"] = entry.Classification
	}
	json.NewEncoder(w).Encode(out)
}

// renderPage writes the whole chat page: sidebar controls with the current
// selections, the ask box, then history newest-first.
func renderPage(w http.ResponseWriter, session *chat.Session, state controlState) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	fmt.Fprint(w, htmlHeader)
	fmt.Fprint(w, `<form method="post" action="/"><div class="layout">`)

	renderSidebar(w, state)

	fmt.Fprint(w, `<main class="content">`)
	fmt.Fprintf(w, `<div class="ask"><input type="text" name="q" value="%s" placeholder="Enter your input:" autofocus><button type="submit">Ask</button></div>`,
		html.EscapeString(state.Question))
	renderHistory(w, session.History.All())
	fmt.Fprint(w, `</main></div></form>`)

	fmt.Fprint(w, htmlFooter)
}

func renderSidebar(w http.ResponseWriter, state controlState) {
	fmt.Fprint(w, `<aside class="sidebar"><h2>Dialectica</h2>`)

	fmt.Fprint(w, `<label for="model">Select Model</label><select name="model" id="model">`)
	for _, m := range catalog.Models {
		selected := ""
		if m.ID == state.Config.Model {
			selected = " selected"
		}
		fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			html.EscapeString(m.ID), selected, html.EscapeString(catalog.ModelName(m.ID)))
	}
	fmt.Fprint(w, `</select>`)

	fmt.Fprintf(w, `<label for="temperature">Temperature</label><input type="number" name="temperature" id="temperature" min="%.1f" max="%.1f" step="0.1" value="%.1f">`,
		catalog.Limits.TemperatureMin, catalog.Limits.TemperatureMax, state.Config.Temperature)
	fmt.Fprintf(w, `<label for="max_tokens">Max Tokens</label><input type="number" name="max_tokens" id="max_tokens" min="%d" max="%d" step="100" value="%d">`,
		catalog.Limits.MaxTokensMin, catalog.Limits.MaxTokensMax, state.Config.MaxTokens)

	fmt.Fprint(w, `<label for="tone">Select Tone</label><select name="tone" id="tone">`)
	for _, t := range philosophy.Tones() {
		selected := ""
		if t.Name == state.Tone.Name {
			selected = " selected"
		}
		fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, html.EscapeString(t.Name), selected, html.EscapeString(t.Name))
	}
	fmt.Fprint(w, `</select>`)
	fmt.Fprintf(w, `<p class="tone-desc">%s</p>`, html.EscapeString(state.Tone.Description))

	checked := ""
	if state.Classify {
		checked = " checked"
	}
	fmt.Fprintf(w, `<label class="check"><input type="checkbox" name="classify" value="on"%s>Classify question</label>`, checked)

	fmt.Fprint(w, `<div class="actions">`)
	if questions != nil && questions.Len() > 0 {
		fmt.Fprint(w, `<button type="submit" formaction="/random" formnovalidate>Get Random Question</button>`)
	}
	fmt.Fprint(w, `<button type="submit" formaction="/clear" formnovalidate>Clear History</button>`)
	fmt.Fprint(w, `</div>`)

	fmt.Fprintf(w, `<p class="now">Time: %s</p>`, time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprint(w, `</aside>`)
}

// renderHistory writes the entries latest first, as the original interface
// displayed them.
func renderHistory(w http.ResponseWriter, entries []chat.Entry) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]

		fmt.Fprint(w, `<div class="entry">`)
		fmt.Fprintf(w, `<div class="q">&#128100; %s</div>`, html.EscapeString(e.Question))

		class := "a"
		if e.Failed {
			class = "a failed"
		}
		fmt.Fprintf(w, `<div class="%s">&#129433; %s</div>`, class, html.EscapeString(e.Answer))

		meta := fmt.Sprintf("%.2fs | %s | %d words | %d&#8594;%d tokens",
			e.Elapsed.Seconds(), html.EscapeString(e.Model), e.Words(), e.InputTokens, e.OutputTokens)
		if e.Classification != "" {
			meta += fmt.Sprintf(` | <span class="badge">%s</span>`, html.EscapeString(e.Classification))
		}
		if e.Tone != "" && e.Tone != philosophy.Neutral.Name {
			meta += " | " + html.EscapeString(e.Tone)
		}
		meta += " | " + e.CreatedAt.Format("2006-01-02 15:04:05")
		fmt.Fprintf(w, `<div class="meta">%s</div>`, meta)
		fmt.Fprint(w, `</div>`)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status": "healthy",
		"services": map[string]bool{
			"http": appConfig.HTTPPort > 0,
			"ssh":  appConfig.SSHPort > 0,
			"dns":  appConfig.DNSPort > 0,
		},
		"ports": map[string]int{
			"http": appConfig.HTTPPort,
			"ssh":  appConfig.SSHPort,
			"dns":  appConfig.DNSPort,
		},
		"models":   len(catalog.Models),
		"sessions": sessions.count(),
		"audit":    auditor != nil,
	}

	if questions != nil {
		health["question_bank"] = questions.Len()
	}

	if prober != nil {
		backend := map[string]interface{}{
			"provider": appConfig.Provider,
			"healthy":  prober.Healthy(),
		}
		if last := prober.LastCheck(); !last.IsZero() {
			backend["last_check"] = last.Format(time.RFC3339)
		}
		health["backend"] = backend
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleModels exposes the catalog so clients can discover valid asks.
func handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog)
}
