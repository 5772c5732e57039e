package driven

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// RecordStore provides read access to customers, orders and support
// tickets. Backed by SQLite.
//
// Name lookups are case-insensitive substring matches. When a substring
// matches multiple customers the store's own ordering decides and the
// first match wins; callers accept this as a known limitation.
type RecordStore interface {
	// FindCustomer returns the first customer whose name contains the
	// given substring (case-insensitive), with orders attached most
	// recent first. Returns domain.ErrNotFound on zero matches.
	FindCustomer(ctx context.Context, nameSubstring string) (*domain.CustomerRecord, error)

	// FindTickets returns all support tickets for a customer, most
	// recent first.
	FindTickets(ctx context.Context, customerID int64) ([]domain.SupportTicket, error)

	// SearchCustomers returns every customer whose name, email or phone
	// contains the given substring. An empty substring returns all
	// customers. Read-only and idempotent.
	SearchCustomers(ctx context.Context, substring string) ([]domain.CustomerRecord, error)
}
