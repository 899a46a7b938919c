// Package email sends organizer notifications for accepted form
// submissions.
package email

import (
	"context"
	"errors"
	"strings"
)

// Provider is a pluggable email sender implementation.
type Provider interface {
	Send(ctx context.Context, message Message) error
	Close() error
}

// Message is the normalized email payload accepted by all providers.
type Message struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	TextBody string
}

func (m Message) normalized() Message {
	cp := m
	cp.From = strings.TrimSpace(cp.From)
	cp.ReplyTo = strings.TrimSpace(cp.ReplyTo)
	cp.Subject = strings.TrimSpace(cp.Subject)
	cp.To = normalizeEmailList(cp.To)
	return cp
}

func (m Message) validate() error {
	if len(m.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("email subject is required")
	}
	if strings.TrimSpace(m.TextBody) == "" {
		return errors.New("email body is required")
	}
	return nil
}

func normalizeEmailList(list []string) []string {
	if len(list) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, value := range list {
		email := strings.TrimSpace(value)
		if email == "" {
			continue
		}
		key := strings.ToLower(email)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, email)
	}
	return out
}
