package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/term"

	"github.com/csv610/dialectica/chat"
	"github.com/csv610/dialectica/philosophy"
)

const sshBanner = "Dialectica - philosophy chat over ssh\r\nAsk anything, or type /help for commands.\r\n\r\n"

// StartSSHServer serves an interactive chat terminal. Connections are
// anonymous; each one gets its own session and history, discarded on
// disconnect. The host key is regenerated at every start.
func StartSSHServer(port int) error {
	logger := slog.With("component", "ssh")

	config := &ssh.ServerConfig{NoClientAuth: true}
	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate host key: %w", err)
	}
	signer, err := ssh.NewSignerFromKey(private)
	if err != nil {
		return fmt.Errorf("host key signer: %w", err)
	}
	config.AddHostKey(signer)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("ssh listen: %w", err)
	}
	logger.Info("ssh server listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Error("ssh accept failed", "error", err)
			continue
		}
		go handleSSHConn(conn, config, logger)
	}
}

func handleSSHConn(conn net.Conn, config *ssh.ServerConfig, logger *slog.Logger) {
	defer conn.Close()

	serverConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		return
	}
	defer serverConn.Close()
	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		channel, requests, err := newChannel.Accept()
		if err != nil {
			logger.Error("ssh channel accept failed", "error", err)
			continue
		}

		go func(in <-chan *ssh.Request) {
			for req := range in {
				switch req.Type {
				case "shell", "pty-req", "env", "window-change":
					req.Reply(true, nil)
				default:
					req.Reply(false, nil)
				}
			}
		}(requests)

		go runSSHChat(channel)
	}
}

// runSSHChat is the per-connection read/ask/print loop.
func runSSHChat(channel ssh.Channel) {
	defer channel.Close()

	session := chat.NewSession()
	tone := philosophy.Neutral
	classify := false

	terminal := term.NewTerminal(channel, "> ")
	terminal.Write([]byte(sshBanner))

	for {
		line, err := terminal.ReadLine()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := sshCommand(terminal, session, &tone, &classify, line); quit {
				return
			}
			continue
		}

		entry := service.Ask(context.Background(), session, chat.Ask{
			Question: line,
			Tone:     tone,
			Config:   catalog.DefaultConfig(),
			Classify: classify,
			Channel:  "ssh",
		})
		printSSHEntry(terminal, entry)
	}
}

func printSSHEntry(terminal *term.Terminal, entry chat.Entry) {
	fmt.Fprintf(terminal, "\r\n%s\r\n", strings.ReplaceAll(entry.Answer, "\n", "\r\n"))
	if entry.Failed {
		fmt.Fprint(terminal, "\r\n")
		return
	}
	status := fmt.Sprintf("[%.2fs, %s", entry.Elapsed.Seconds(), entry.Model)
	if entry.Classification != "" {
		status += ", " + entry.Classification
	}
	fmt.Fprintf(terminal, "%s]\r\n\r\n", status)
}

// sshCommand handles the /-prefixed controls. Returns true on /quit.
func sshCommand(terminal *term.Terminal, session *chat.Session, tone *philosophy.Tone, classify *bool, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		fmt.Fprint(terminal, "Commands:\r\n"+
			"  /tone <name>     set the answer tone\r\n"+
			"  /tones           list available tones\r\n"+
			"  /classify on|off tag questions with a category\r\n"+
			"  /history         show this connection's history\r\n"+
			"  /clear           clear this connection's history\r\n"+
			"  /quit            disconnect\r\n")
	case "/tones":
		for _, t := range philosophy.Tones() {
			fmt.Fprintf(terminal, "  %s\r\n", t.Name)
		}
	case "/tone":
		t, ok := philosophy.ToneByName(arg)
		if !ok {
			fmt.Fprintf(terminal, "unknown tone %q, see /tones\r\n", arg)
			break
		}
		*tone = t
		fmt.Fprintf(terminal, "tone set to %s\r\n", t.Name)
	case "/classify":
		switch arg {
		case "on":
			*classify = true
			fmt.Fprint(terminal, "classification on\r\n")
		case "off":
			*classify = false
			fmt.Fprint(terminal, "classification off\r\n")
		default:
			fmt.Fprint(terminal, "usage: /classify on|off\r\n")
		}
	case "/history":
		entries := session.History.All()
		if len(entries) == 0 {
			fmt.Fprint(terminal, "no history yet\r\n")
			break
		}
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(terminal, "Q: %s\r\nA: %s\r\n\r\n", e.Question, strings.ReplaceAll(e.Answer, "\n", "\r\n"))
		}
	case "/clear":
		session.History.Clear()
		fmt.Fprint(terminal, "history cleared\r\n")
	case "/quit", "/exit":
		return true
	default:
		fmt.Fprintf(terminal, "unknown command %s, see /help\r\n", cmd)
	}
	return false
}
