package forms

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/store"
	"github.com/pytogo/website/pkg/store/memory"
)

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []string
}

func (n *recordingNotifier) NotifySubmission(kind string, _ map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

type insertFailingStore struct {
	*memory.Adapter
}

func (s *insertFailingStore) Insert(_ context.Context, _ string, _ map[string]any) error {
	return errors.New("storage unavailable")
}

func newService(tables store.TableStore) *Service {
	svc := NewService(tables, config.FormsConfig{CheckDeliverability: false}, logger.Nop())
	return svc
}

func validJoin() JoinRequest {
	return JoinRequest{
		Name:         "Afi",
		Email:        "afi@example.org",
		AgreePrivacy: true,
		AgreeCoC:     true,
	}
}

func validContact() ContactMessage {
	return ContactMessage{
		Name:         "Kossi",
		Email:        "kossi@example.org",
		Subject:      "Hello",
		Message:      "A question about meetups.",
		AgreePrivacy: true,
		AgreeCoC:     true,
	}
}

func TestSubmitJoin_Received(t *testing.T) {
	tables := memory.NewAdapter(logger.Nop())
	svc := newService(tables)

	result, err := svc.SubmitJoin(context.Background(), validJoin())
	if err != nil {
		t.Fatalf("SubmitJoin() error = %v", err)
	}
	if result.Status != StatusReceived {
		t.Errorf("Status = %q, want %q", result.Status, StatusReceived)
	}

	rows, _ := tables.SelectAll(context.Background(), store.TableMembers)
	if len(rows) != 1 {
		t.Fatalf("persisted rows = %d, want 1", len(rows))
	}
	if rows[0]["email"] != "afi@example.org" {
		t.Errorf("row = %v", rows[0])
	}
	if rows[0]["agree_privacy"] != true {
		t.Errorf("consent not persisted as bool: %v", rows[0]["agree_privacy"])
	}
}

func TestSubmit_ConsentRequired(t *testing.T) {
	svc := newService(memory.NewAdapter(logger.Nop()))

	tests := []struct {
		name    string
		privacy FlexBool
		coc     FlexBool
	}{
		{"privacy missing", false, true},
		{"coc missing", true, false},
		{"both missing", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validJoin()
			req.AgreePrivacy = tt.privacy
			req.AgreeCoC = tt.coc
			_, err := svc.SubmitJoin(context.Background(), req)
			if !errors.Is(err, ErrConsentRequired) {
				t.Errorf("SubmitJoin() error = %v, want ErrConsentRequired", err)
			}
		})
	}
}

func TestSubmit_ConsentCheckedBeforeEmail(t *testing.T) {
	svc := newService(memory.NewAdapter(logger.Nop()))

	req := validJoin()
	req.Email = "not-an-email"
	req.AgreePrivacy = false

	_, err := svc.SubmitJoin(context.Background(), req)
	if !errors.Is(err, ErrConsentRequired) {
		t.Errorf("error = %v, want ErrConsentRequired even with bad email", err)
	}
}

func TestSubmit_InvalidEmail(t *testing.T) {
	svc := newService(memory.NewAdapter(logger.Nop()))

	for _, email := range []string{"not-an-email", "missing@tld@x", "", "a@"} {
		req := validJoin()
		req.Email = email
		_, err := svc.SubmitJoin(context.Background(), req)
		if !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("email %q: error = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestSubmit_DeliverabilityCheck(t *testing.T) {
	svc := NewService(memory.NewAdapter(logger.Nop()), config.FormsConfig{CheckDeliverability: true}, logger.Nop())

	var lookedUp string
	svc.lookupMX = func(domain string) ([]*net.MX, error) {
		lookedUp = domain
		return nil, errors.New("no such host")
	}

	_, err := svc.SubmitJoin(context.Background(), validJoin())
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("error = %v, want ErrInvalidEmail", err)
	}
	if lookedUp != "example.org" {
		t.Errorf("looked up domain = %q, want example.org", lookedUp)
	}

	svc.lookupMX = func(string) ([]*net.MX, error) {
		return []*net.MX{{Host: "mx.example.org"}}, nil
	}
	result, err := svc.SubmitJoin(context.Background(), validJoin())
	if err != nil || result.Status != StatusReceived {
		t.Errorf("result = %+v, err = %v", result, err)
	}
}

func TestSubmit_MissingRequiredFields(t *testing.T) {
	svc := newService(memory.NewAdapter(logger.Nop()))

	req := validContact()
	req.Subject = ""
	_, err := svc.SubmitContact(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}

	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != "validation_failed" {
		t.Errorf("error code = %v, want validation_failed", err)
	}
}

func TestSubmit_StorageFailureDegradesToFailed(t *testing.T) {
	svc := newService(&insertFailingStore{memory.NewAdapter(logger.Nop())})

	result, err := svc.SubmitContact(context.Background(), validContact())
	if err != nil {
		t.Fatalf("SubmitContact() error = %v, want nil on storage failure", err)
	}
	if result.Status != StatusFailed {
		t.Errorf("Status = %q, want %q", result.Status, StatusFailed)
	}
}

func TestSubmitPartnership_TableAndNotifier(t *testing.T) {
	tables := memory.NewAdapter(logger.Nop())
	notifier := &recordingNotifier{}
	svc := newService(tables).WithNotifier(notifier)

	req := PartnershipRequest{
		Organization: "Acme",
		ContactName:  "Ama",
		Email:        "ama@example.org",
		Website:      "https://acme.example",
		AgreePrivacy: true,
		AgreeCoC:     true,
	}
	result, err := svc.SubmitPartnership(context.Background(), req)
	if err != nil || result.Status != StatusReceived {
		t.Fatalf("result = %+v, err = %v", result, err)
	}

	rows, _ := tables.SelectAll(context.Background(), store.TablePartnershipRequests)
	if len(rows) != 1 {
		t.Fatalf("persisted rows = %d, want 1", len(rows))
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.kinds) != 1 || notifier.kinds[0] != store.TablePartnershipRequests {
		t.Errorf("notifier kinds = %v", notifier.kinds)
	}
}

func TestSubmit_RejectedSubmissionNotPersisted(t *testing.T) {
	tables := memory.NewAdapter(logger.Nop())
	svc := newService(tables)

	req := validJoin()
	req.AgreeCoC = false
	if _, err := svc.SubmitJoin(context.Background(), req); err == nil {
		t.Fatal("expected rejection")
	}

	rows, _ := tables.SelectAll(context.Background(), store.TableMembers)
	if len(rows) != 0 {
		t.Errorf("rejected submission persisted: %v", rows)
	}
}
