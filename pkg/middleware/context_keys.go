package middleware

// ContextKey is a typed key for context values to avoid collisions
type ContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey ContextKey = "request_id"

	// LocaleKey is the context key for the resolved locale
	LocaleKey ContextKey = "locale"
)
