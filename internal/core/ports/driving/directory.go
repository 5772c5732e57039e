package driving

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// DirectoryService exposes direct structured lookups, bypassing the
// agents. Backs the non-routing MCP tools and CLI subcommands.
type DirectoryService interface {
	// Profile returns the first customer matching the name substring,
	// orders attached. Returns domain.ErrNotFound on zero matches.
	Profile(ctx context.Context, name string) (*domain.CustomerRecord, error)

	// Tickets returns the ticket history for the first customer
	// matching the name substring.
	Tickets(ctx context.Context, name string) (*domain.TicketHistory, error)

	// SearchCustomers returns all customers matching the substring.
	// An empty substring returns all customers.
	SearchCustomers(ctx context.Context, query string) ([]domain.CustomerRecord, error)

	// PolicyDocument returns the full text of a canonical policy.
	PolicyDocument(ctx context.Context, policyID string) (string, error)
}
