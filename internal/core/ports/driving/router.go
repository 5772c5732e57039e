package driving

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// RouterService dispatches a question to exactly one agent and formats
// the structured result for display.
type RouterService interface {
	// Route selects an agent for the question and returns its
	// structured result.
	Route(ctx context.Context, question string) (domain.AgentResult, error)

	// Process routes the question and renders the result as
	// markdown-flavoured prose.
	Process(ctx context.Context, question string) (string, error)

	// Format renders an already-obtained agent result as
	// markdown-flavoured prose.
	Format(result domain.AgentResult) string
}

// AgentService is a single specialised agent, addressable directly when
// the caller already knows which agent should handle the question.
type AgentService interface {
	ProcessQuery(ctx context.Context, question string) (domain.AgentResult, error)
}
