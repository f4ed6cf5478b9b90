package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// backendProber periodically checks that the model backend answers HTTP at
// all, feeding the /health endpoint. It never gates asks; a down backend
// simply surfaces as failed entries.
type backendProber struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	running   bool
	stopChan  chan struct{}
	healthy   bool
	lastCheck time.Time
}

func newBackendProber(url string, interval, timeout time.Duration, logger *slog.Logger) *backendProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &backendProber{
		url:      url,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "health"),
		stopChan: make(chan struct{}),
	}
}

// Start begins probing until Stop is called.
func (p *backendProber) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go p.run()
}

// Stop halts the probe loop.
func (p *backendProber) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()
	close(p.stopChan)
}

func (p *backendProber) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.check()
	for {
		select {
		case <-ticker.C:
			p.check()
		case <-p.stopChan:
			return
		}
	}
}

func (p *backendProber) check() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.set(false)
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		p.set(false)
		return
	}
	resp.Body.Close()
	p.set(resp.StatusCode < http.StatusInternalServerError)
}

func (p *backendProber) set(healthy bool) {
	p.mu.Lock()
	changed := p.healthy != healthy
	p.healthy = healthy
	p.lastCheck = time.Now()
	p.mu.Unlock()

	if changed {
		p.logger.Info("backend health changed", "healthy", healthy, "url", p.url)
	}
}

// Healthy reports the most recent probe result.
func (p *backendProber) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy
}

// LastCheck reports when the backend was last probed.
func (p *backendProber) LastCheck() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCheck
}
