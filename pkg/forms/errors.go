package forms

import "net/http"

// AppError is a rejected submission surfaced to the client as
// {"error": <code>} with the given status.
type AppError struct {
	Code   string
	Status int
}

func (e *AppError) Error() string {
	return e.Code
}

var (
	// ErrInvalidEmail rejects a submission whose email fails format or
	// deliverability checks. The code is the literal string shown to users.
	ErrInvalidEmail = &AppError{Code: "Please use a valid email", Status: http.StatusBadRequest}

	// ErrConsentRequired rejects a submission missing either consent flag.
	ErrConsentRequired = &AppError{Code: "consent_required", Status: http.StatusBadRequest}

	// ErrValidation rejects a submission with missing or malformed
	// required fields.
	ErrValidation = &AppError{Code: "validation_failed", Status: http.StatusBadRequest}

	// ErrMalformedPayload rejects a body that cannot be decoded at all.
	ErrMalformedPayload = &AppError{Code: "malformed_payload", Status: http.StatusBadRequest}
)
