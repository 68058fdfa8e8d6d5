// Package mailer sends notification email through a plain SMTP relay.
// Delivery is best effort, callers log failures and move on.
package mailer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/velostock/velostock/foundation/logger"
)

//go:embed templates/lead.html
var leadTemplate string

// Config holds the relay settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends mail through the configured relay.
type Mailer struct {
	log  *logger.Logger
	cfg  Config
	tmpl *template.Template
}

// LeadNotification carries the fields rendered into the new lead email.
type LeadNotification struct {
	CompanyName string
	LeadName    string
	LeadPhone   string
	LeadEmail   string
	Vehicle     string
	Source      string
	Notes       string
}

// New constructs a mailer. The lead template is parsed once at startup.
func New(log *logger.Logger, cfg Config) (*Mailer, error) {
	tmpl, err := template.New("lead").Parse(leadTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse lead template: %w", err)
	}

	return &Mailer{
		log:  log,
		cfg:  cfg,
		tmpl: tmpl,
	}, nil
}

// SendLeadNotification mails the company sales inbox about a new lead.
func (m *Mailer) SendLeadNotification(ctx context.Context, to string, ln LeadNotification) error {
	var body bytes.Buffer
	if err := m.tmpl.Execute(&body, ln); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	subject := fmt.Sprintf("Novo lead: %s", ln.LeadName)

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var a smtp.Auth
	if m.cfg.User != "" {
		a = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, a, m.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("sendmail: %w", err)
	}

	m.log.Info(ctx, "mailer: lead notification sent", "to", to, "lead", ln.LeadName)

	return nil
}
