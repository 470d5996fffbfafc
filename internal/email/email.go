// Package email formats and sends inquiry notifications to agents.
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/satish051/RealEstateApp/internal/inquiry"
	"github.com/satish051/RealEstateApp/internal/property"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// FormatInquiry builds the plain-text notification sent to the agent
// behind a listing when someone inquires about it.
func FormatInquiry(q *inquiry.Inquiry, p *property.Property, baseURL string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "New inquiry for %s\n\n", p.Title)
	fmt.Fprintf(&buf, "Property: %s, %s\n", p.Title, p.Address)
	fmt.Fprintf(&buf, "Price: $%s\n", formatPrice(p.Price))
	fmt.Fprintf(&buf, "From: %s\n\n", q.UserEmail)
	fmt.Fprintf(&buf, "%s\n\n", q.Message)
	fmt.Fprintf(&buf, "%s/property/%d\n", baseURL, p.ID)

	return buf.String()
}

// Send sends an email via SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
func Send(cfg SMTPConfig, to []string, subject, body string) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		cfg.From,
		strings.Join(to, ", "),
		subject,
		body,
	)

	addr := cfg.Host + ":" + cfg.Port

	if cfg.Port == "465" {
		return sendImplicitTLS(cfg, addr, to, msg)
	}
	return sendSTARTTLS(cfg, addr, to, msg)
}

// sendImplicitTLS connects over TLS directly (port 465/SMTPS).
func sendImplicitTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	tlsCfg := &tls.Config{ServerName: cfg.Host}
	conn, err := tls.Dial("tcp", addr, tlsCfg)
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := c.Quit(); quitErr != nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if cfg.User != "" {
		auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	return nil
}

// sendSTARTTLS connects plain then upgrades to TLS (port 587).
func sendSTARTTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

func formatPrice(cents int64) string {
	dollars := cents / 100
	s := fmt.Sprintf("%d", dollars)
	if len(s) <= 3 {
		return withCents(s, cents)
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return withCents(strings.Join(parts, ","), cents)
}

func withCents(dollars string, cents int64) string {
	if cents%100 == 0 {
		return dollars
	}
	return fmt.Sprintf("%s.%02d", dollars, cents%100)
}
