package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/store"
)

// Notifier is told about accepted submissions, e.g. to email organizers.
// Implementations must not block the request path.
type Notifier interface {
	NotifySubmission(kind string, record map[string]any)
}

// Result is the accepted-submission payload returned to clients.
type Result struct {
	Status string `json:"status"`
}

const (
	// StatusReceived means the submission was validated and persisted.
	StatusReceived = "received"
	// StatusFailed means the submission was valid but storage rejected it.
	StatusFailed = "failed"
)

// Service validates submissions and forwards them to the table store.
type Service struct {
	tables              store.TableStore
	validate            *validator.Validate
	checkDeliverability bool
	lookupMX            func(domain string) ([]*net.MX, error)
	notifier            Notifier
	logger              logger.Logger
}

// NewService creates a submission service.
func NewService(tables store.TableStore, cfg config.FormsConfig, log logger.Logger) *Service {
	return &Service{
		tables:              tables,
		validate:            validator.New(),
		checkDeliverability: cfg.CheckDeliverability,
		lookupMX:            net.LookupMX,
		logger:              log,
	}
}

// WithNotifier attaches an optional submission notifier.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// SubmitJoin accepts a membership submission.
func (s *Service) SubmitJoin(ctx context.Context, req JoinRequest) (Result, error) {
	return s.accept(ctx, store.TableMembers, req)
}

// SubmitContact accepts a contact submission.
func (s *Service) SubmitContact(ctx context.Context, req ContactMessage) (Result, error) {
	return s.accept(ctx, store.TableContacts, req)
}

// SubmitPartnership accepts a partnership submission.
func (s *Service) SubmitPartnership(ctx context.Context, req PartnershipRequest) (Result, error) {
	return s.accept(ctx, store.TablePartnershipRequests, req)
}

// accept runs the shared accept/reject decision: consent first, then
// email, then the remaining required fields. A storage failure degrades
// to a "failed" status instead of an error.
func (s *Service) accept(ctx context.Context, table string, req consented) (Result, error) {
	if !req.consentGiven() {
		return Result{}, ErrConsentRequired
	}
	if err := s.validateEmail(req.email()); err != nil {
		return Result{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return Result{}, ErrValidation
	}

	record, err := toRecord(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode submission: %w", err)
	}

	if err := s.tables.Insert(ctx, table, record); err != nil {
		s.logger.Error("failed to persist submission", "table", table, "error", err)
		return Result{Status: StatusFailed}, nil
	}

	if s.notifier != nil {
		s.notifier.NotifySubmission(table, record)
	}
	return Result{Status: StatusReceived}, nil
}

func (s *Service) validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if s.validate.Var(email, "required,email") != nil {
		return ErrInvalidEmail
	}
	if !s.checkDeliverability {
		return nil
	}

	domain := email[strings.LastIndex(email, "@")+1:]
	records, err := s.lookupMX(domain)
	if err != nil || len(records) == 0 {
		return ErrInvalidEmail
	}
	return nil
}

func toRecord(req any) (map[string]any, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return record, nil
}
