package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/csv610/dialectica/chat"
	"github.com/csv610/dialectica/config"
	"github.com/csv610/dialectica/philosophy"
	"github.com/csv610/dialectica/providers"
)

// Shared service state, wired once in main and read by the channel handlers.
var (
	appConfig *Config
	catalog   *config.Catalog
	service   *chat.Service
	sessions  *sessionRegistry
	questions *philosophy.QuestionBank
	prober    *backendProber
	auditor   *askAuditor
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	appConfig = cfg

	logFile := setupLogging(cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}

	catalog, err = config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		slog.Error("cannot load model catalog", "file", cfg.CatalogFile, "error", err)
		os.Exit(1)
	}
	slog.Info("model catalog ready", "models", len(catalog.Models), "default", catalog.Defaults.Model)

	questions, err = philosophy.LoadQuestionBank(cfg.QuestionsFile)
	if err != nil {
		// Not fatal: the random-question button just stays hidden.
		slog.Warn("question bank unavailable", "file", cfg.QuestionsFile, "error", err)
		questions = nil
	} else {
		slog.Info("question bank ready", "file", cfg.QuestionsFile, "questions", questions.Len())
	}

	configureRateLimit(cfg.RatePerSecond, cfg.RateBurst)
	startRateLimitSweeper(10 * time.Minute)

	sessions = newSessionRegistry(cfg.SessionTTL)
	sessions.start()

	var auditing chat.Auditor
	if cfg.EnableAudit {
		a, err := newAskAuditor(cfg.AuditDB, slog.Default())
		if err != nil {
			slog.Error("audit unavailable, continuing without it", "db", cfg.AuditDB, "error", err)
		} else {
			auditor = a
			auditing = a
			defer a.Close()
		}
	}

	var factory providers.Factory
	backendURL := cfg.OllamaURL
	switch cfg.Provider {
	case "openai":
		backendURL = cfg.OpenAIURL
		factory = providers.OpenAIFactory(cfg.OpenAIURL, cfg.OpenAIKey, cfg.BackendTimeout)
	default:
		factory = providers.OllamaFactory(cfg.OllamaURL, cfg.BackendTimeout)
	}

	recorder := chat.NewRecorder(slog.Default())
	service = chat.NewService(providers.NewCache(factory), recorder, auditing, slog.Default())

	prober = newBackendProber(backendURL, 30*time.Second, 5*time.Second, slog.Default())
	prober.Start()
	defer prober.Stop()

	if cfg.SSHPort > 0 {
		go func() {
			if err := StartSSHServer(cfg.SSHPort); err != nil {
				slog.Error("ssh server stopped", "error", err)
			}
		}()
	}

	if cfg.DNSPort > 0 {
		go func() {
			if err := StartDNSServer(cfg.DNSPort); err != nil {
				slog.Error("dns server stopped", "error", err)
			}
		}()
	}

	if cfg.HTTPPort > 0 {
		if err := StartHTTPServer(cfg.HTTPPort); err != nil {
			slog.Error("http server stopped", "error", err)
			os.Exit(1)
		}
	} else {
		// No HTTP but maybe SSH/DNS: block forever.
		select {}
	}
}

// setupLogging points slog at stderr plus the diagnostic file. The file is
// truncated on every start so it only ever holds the current run.
func setupLogging(path string) *os.File {
	writers := []io.Writer{os.Stderr}

	var logFile *os.File
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			slog.Warn("cannot open log file, logging to stderr only", "file", path, "error", err)
		} else {
			logFile = f
			writers = append(writers, f)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(io.MultiWriter(writers...), nil)))
	return logFile
}
