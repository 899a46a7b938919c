package email

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pytogo/website/pkg/observability/logger"
)

// SubmissionNotifier emails organizers about accepted form submissions.
// Sends are fire-and-forget: a delivery failure is logged, never surfaced
// to the submitting user.
type SubmissionNotifier struct {
	provider Provider
	to       []string
	logger   logger.Logger
	timeout  time.Duration

	// send is swapped in tests to run synchronously.
	dispatch func(func())
}

// NewSubmissionNotifier creates a notifier delivering to the given address.
func NewSubmissionNotifier(provider Provider, notifyTo string, log logger.Logger) *SubmissionNotifier {
	return &SubmissionNotifier{
		provider: provider,
		to:       []string{notifyTo},
		logger:   log,
		timeout:  15 * time.Second,
		dispatch: func(f func()) { go f() },
	}
}

// NotifySubmission sends one notification per accepted submission.
func (n *SubmissionNotifier) NotifySubmission(kind string, record map[string]any) {
	if n.provider == nil {
		return
	}
	msg := Message{
		To:       n.to,
		Subject:  fmt.Sprintf("[pytogo.org] new %s submission", kind),
		TextBody: formatRecord(record),
	}
	n.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.provider.Send(ctx, msg); err != nil {
			n.logger.Error("failed to send submission notification", "kind", kind, "error", err)
		}
	})
}

func formatRecord(record map[string]any) string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, record[k])
	}
	return b.String()
}
