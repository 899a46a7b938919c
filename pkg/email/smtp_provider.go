package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/observability/logger"
)

type smtpSendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPProvider sends emails via a standard SMTP server.
type SMTPProvider struct {
	cfg      config.EmailSMTPConfig
	log      logger.Logger
	sendMail smtpSendMailFunc
}

// NewSMTPProvider creates a standard SMTP adapter.
func NewSMTPProvider(cfg config.EmailSMTPConfig, log logger.Logger) (*SMTPProvider, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 10 * time.Second
	}
	return &SMTPProvider{
		cfg:      cfg,
		log:      log,
		sendMail: smtp.SendMail,
	}, nil
}

// Send sends email via SMTP.
func (p *SMTPProvider) Send(ctx context.Context, message Message) error {
	msg := message.normalized()
	if msg.From == "" {
		from := strings.TrimSpace(p.cfg.From)
		if from == "" {
			return fmt.Errorf("message.from is required when no default sender is configured")
		}
		msg.From = from
	}
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)
	raw := buildMIMEMessage(msg)

	var auth smtp.Auth
	if strings.TrimSpace(p.cfg.Username) != "" {
		auth = smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	}

	if p.cfg.EnableTLS && p.cfg.Port == 465 {
		return p.sendMailWithTLS(addr, auth, msg.From, msg.To, raw)
	}
	return p.sendMail(addr, auth, msg.From, msg.To, raw)
}

func (p *SMTPProvider) sendMailWithTLS(addr string, auth smtp.Auth, from string, to []string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName:         p.cfg.Host,
		InsecureSkipVerify: p.cfg.InsecureSkipVerify,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, p.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// Close releases provider resources.
func (p *SMTPProvider) Close() error {
	return nil
}

func buildMIMEMessage(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	if msg.ReplyTo != "" {
		b.WriteString("Reply-To: " + msg.ReplyTo + "\r\n")
	}
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.TextBody)
	return []byte(b.String())
}
