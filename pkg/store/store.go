package store

import "context"

// Adapter is the minimal lifecycle and health contract for storage adapters.
type Adapter interface {
	HealthCheck(ctx context.Context) error
	Close() error
}

// TableStore persists and reads rows of hosted tables. Records are flat
// JSON objects so the same interface serves both the REST backend and the
// in-memory one.
type TableStore interface {
	Adapter
	Insert(ctx context.Context, table string, record map[string]any) error
	SelectAll(ctx context.Context, table string) ([]map[string]any, error)
}

// Table names used by the website.
const (
	TableMembers             = "members"
	TableContacts            = "contacts"
	TablePartnershipRequests = "partnershiprequest"
	TablePartners            = "partners"
	TableGalleries           = "galleries"
)
