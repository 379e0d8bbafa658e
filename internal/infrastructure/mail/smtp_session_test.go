package mail

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/ports"
)

// fakeRelay is a minimal SMTP server: it accepts one envelope and records
// the commands and the DATA payload.
type fakeRelay struct {
	ln       net.Listener
	mu       sync.Mutex
	commands []string
	data     string
}

func startFakeRelay(t *testing.T) *fakeRelay {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	r := &fakeRelay{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })
	go r.serve()
	return r
}

func (r *fakeRelay) serve() {
	conn, err := r.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	rd := bufio.NewReader(conn)
	reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
	reply("220 relay ready")
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		r.mu.Lock()
		r.commands = append(r.commands, cmd)
		r.mu.Unlock()

		switch verb := strings.ToUpper(strings.SplitN(cmd, " ", 2)[0]); verb {
		case "EHLO":
			reply("250-relay")
			reply("250 8BITMIME")
		case "MAIL", "RCPT":
			reply("250 ok")
		case "DATA":
			reply("354 go ahead")
			var b strings.Builder
			for {
				dl, err := rd.ReadString('\n')
				if err != nil {
					return
				}
				if dl == ".\r\n" {
					break
				}
				b.WriteString(dl)
			}
			r.mu.Lock()
			r.data = b.String()
			r.mu.Unlock()
			reply("250 queued")
		case "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 not implemented")
		}
	}
}

func (r *fakeRelay) port(t *testing.T) int {
	t.Helper()
	_, p, _ := net.SplitHostPort(r.ln.Addr().String())
	n, err := strconv.Atoi(p)
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return n
}

func TestSMTPMailer_DeliversOverSession(t *testing.T) {
	relay := startFakeRelay(t)
	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: relay.port(t), From: "store@playverse.test", Timeout: 2 * time.Second}, zerolog.Nop())

	err := m.Send(context.Background(), ports.MailMessage{To: "ana@example.com", Subject: "Reset", Text: "link"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	relay.mu.Lock()
	defer relay.mu.Unlock()
	joined := strings.Join(relay.commands, "\n")
	for _, want := range []string{"MAIL FROM:<store@playverse.test>", "RCPT TO:<ana@example.com>", "QUIT"} {
		if !strings.Contains(joined, want) {
			t.Errorf("relay did not see %q in %q", want, joined)
		}
	}
	if !strings.Contains(relay.data, "Subject: Reset") {
		t.Fatalf("unexpected payload: %q", relay.data)
	}
}

// stalledRelay accepts connections and never greets.
func stalledRelay(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		_ = ln.Close()
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				<-done
				_ = conn.Close()
			}()
		}
	}()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestSMTPMailer_StalledRelayTimesOut(t *testing.T) {
	port := stalledRelay(t)
	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: port, From: "x@y.z", Timeout: 200 * time.Millisecond}, zerolog.Nop())

	start := time.Now()
	if err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c"}); err == nil {
		t.Fatalf("expected a timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("send blocked for %v", elapsed)
	}
}

func TestSMTPMailer_HonoursCallerContext(t *testing.T) {
	port := stalledRelay(t)
	m := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: port, From: "x@y.z", Timeout: time.Minute}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := m.Send(ctx, ports.MailMessage{To: "a@b.c"}); err == nil {
		t.Fatalf("expected an error once the request context expired")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("send ignored the caller context for %v", elapsed)
	}
}
