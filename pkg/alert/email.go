package alert

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Email sends notifications over SMTP with STARTTLS.
type Email struct {
	host     string
	port     int
	user     string
	password string
	to       string

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmail creates an SMTP notifier. Port defaults to 587.
func NewEmail(host string, port int, user, password, to string) *Email {
	if port == 0 {
		port = 587
	}
	return &Email{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		to:       to,
		send:     smtp.SendMail,
	}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Send(ctx context.Context, n *Notification) error {
	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	if err := e.send(addr, auth, e.user, []string{e.to}, e.message(n)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// message builds the RFC 5322 mail: headers, blank line, plain-text body.
func (e *Email) message(n *Notification) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.user)
	fmt.Fprintf(&b, "To: %s\r\n", e.to)
	fmt.Fprintf(&b, "Subject: Macro Radar Alert: %s\r\n", n.Title)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(n.Message())
	b.WriteString("\r\n")
	return []byte(b.String())
}
