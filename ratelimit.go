package main

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor pairs one client's limiter with when it was last seen, so stale
// entries can be swept.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitorsMu sync.Mutex
	visitors   = make(map[string]*visitor)

	rateLimitEvery = rate.Limit(1)
	rateLimitBurst = 10
)

// configureRateLimit sets the per-IP allowance. Limiters handed out under a
// previous allowance are dropped.
func configureRateLimit(perSecond float64, burst int) {
	visitorsMu.Lock()
	defer visitorsMu.Unlock()
	rateLimitEvery = rate.Limit(perSecond)
	rateLimitBurst = burst
	visitors = make(map[string]*visitor)
}

// rateLimitAllow reports whether remoteAddr may issue one more ask.
func rateLimitAllow(remoteAddr string) bool {
	ip := clientIP(remoteAddr)

	visitorsMu.Lock()
	v, ok := visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rateLimitEvery, rateLimitBurst)}
		visitors[ip] = v
	}
	v.lastSeen = time.Now()
	visitorsMu.Unlock()

	return v.limiter.Allow()
}

// startRateLimitSweeper drops limiters idle longer than ttl.
func startRateLimitSweeper(ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-ttl)
			visitorsMu.Lock()
			for ip, v := range visitors {
				if v.lastSeen.Before(cutoff) {
					delete(visitors, ip)
				}
			}
			visitorsMu.Unlock()
		}
	}()
}

// clientIP strips the port from a net address, tolerating bare IPs.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
