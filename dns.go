package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/csv610/dialectica/chat"
	"github.com/csv610/dialectica/philosophy"
	"github.com/csv610/dialectica/providers"
)

// dnsAnswerLimit keeps TXT answers inside what common stub resolvers
// tolerate.
const dnsAnswerLimit = 500

// dnsBrevityPrefix is prepended to every DNS question so answers fit a TXT
// record.
const dnsBrevityPrefix = "Answer in 500 characters or less, no markdown formatting: "

// StartDNSServer serves one-shot questions over DNS TXT queries, e.g.
// dig @host "what-is-justice" TXT. Dashes in the name become spaces.
func StartDNSServer(port int) error {
	dns.HandleFunc(".", handleDNS)

	server := &dns.Server{
		Addr: fmt.Sprintf(":%d", port),
		Net:  "udp",
	}
	slog.Info("dns server listening", "component", "dns", "addr", server.Addr)
	return server.ListenAndServe()
}

func handleDNS(w dns.ResponseWriter, r *dns.Msg) {
	if !rateLimitAllow(w.RemoteAddr().String()) {
		return
	}
	if len(r.Question) == 0 {
		return
	}

	m := new(dns.Msg)
	m.SetReply(r)
	m.Authoritative = true

	for _, q := range r.Question {
		if q.Qtype != dns.TypeTXT {
			continue
		}

		question := strings.ReplaceAll(strings.TrimSuffix(q.Name, "."), "-", " ")

		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		answer := askDNS(ctx, question)
		cancel()

		if len(answer) > dnsAnswerLimit {
			answer = answer[:dnsAnswerLimit-3] + "..."
		}

		m.Answer = append(m.Answer, &dns.TXT{
			Hdr: dns.RR_Header{
				Name:   q.Name,
				Rrtype: dns.TypeTXT,
				Class:  dns.ClassINET,
				Ttl:    60,
			},
			Txt: chunkTXT(answer),
		})
	}

	w.WriteMsg(m)
}

// askDNS runs one neutral ask on a throwaway session, tuned for short
// factual answers.
func askDNS(ctx context.Context, question string) string {
	cfg := catalog.Clamp(providers.Config{
		Model:       appConfig.DNSModel,
		Temperature: appConfig.DNSTemperature,
		MaxTokens:   appConfig.DNSMaxTokens,
	})

	entry := service.Ask(ctx, chat.NewSession(), chat.Ask{
		Question: dnsBrevityPrefix + question,
		Tone:     philosophy.Neutral,
		Config:   cfg,
		Channel:  "dns",
	})
	return entry.Answer
}

// chunkTXT splits s into the 255-byte strings a TXT record carries.
func chunkTXT(s string) []string {
	var chunks []string
	for len(s) > 255 {
		chunks = append(chunks, s[:255])
		s = s[255:]
	}
	return append(chunks, s)
}
