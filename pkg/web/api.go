package web

import (
	"errors"
	"net/http"

	"github.com/pytogo/website/pkg/forms"
	"github.com/pytogo/website/pkg/observability/metrics"
	"github.com/pytogo/website/pkg/server/router"
)

// Form submission outcomes recorded in metrics.
const (
	outcomeRejected = "rejected"
)

// SubmitJoin handles POST /api/v1/join.
func (h *Handlers) SubmitJoin(c router.Context) error {
	var req forms.JoinRequest
	if err := forms.Decode(c.Request(), &req); err != nil {
		return h.rejectSubmission(c, "join", err)
	}
	result, err := h.submissions.SubmitJoin(c.Request().Context(), req)
	if err != nil {
		return h.rejectSubmission(c, "join", err)
	}
	metrics.RecordFormSubmission("join", result.Status)
	return c.JSON(http.StatusOK, result)
}

// SubmitContact handles POST /api/v1/contact.
func (h *Handlers) SubmitContact(c router.Context) error {
	var req forms.ContactMessage
	if err := forms.Decode(c.Request(), &req); err != nil {
		return h.rejectSubmission(c, "contact", err)
	}
	result, err := h.submissions.SubmitContact(c.Request().Context(), req)
	if err != nil {
		return h.rejectSubmission(c, "contact", err)
	}
	metrics.RecordFormSubmission("contact", result.Status)
	return c.JSON(http.StatusOK, result)
}

// SubmitPartnership handles POST /api/v1/partnership.
func (h *Handlers) SubmitPartnership(c router.Context) error {
	var req forms.PartnershipRequest
	if err := forms.Decode(c.Request(), &req); err != nil {
		return h.rejectSubmission(c, "partnership", err)
	}
	result, err := h.submissions.SubmitPartnership(c.Request().Context(), req)
	if err != nil {
		return h.rejectSubmission(c, "partnership", err)
	}
	metrics.RecordFormSubmission("partnership", result.Status)
	return c.JSON(http.StatusOK, result)
}

// rejectSubmission maps a submission error to the {"error": <code>}
// response shape clients rely on.
func (h *Handlers) rejectSubmission(c router.Context, form string, err error) error {
	metrics.RecordFormSubmission(form, outcomeRejected)

	var appErr *forms.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, map[string]string{"error": appErr.Code})
	}

	h.logger.Error("unexpected submission error", "form", form, "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
}
