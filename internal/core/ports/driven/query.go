package driven

import "context"

// QueryRunner executes ad-hoc read-only SQL against the customer
// database. Implementations must reject anything but SELECT statements.
type QueryRunner interface {
	// RunQuery executes a SELECT statement and returns the result rows
	// as column-name keyed maps, in result order.
	RunQuery(ctx context.Context, query string) ([]map[string]any, error)
}
