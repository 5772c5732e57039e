package driving

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// AssistantService answers a question by gathering evidence from both
// the record store and the policy collection, then synthesising one
// response. Each call is independent; there is no conversation state.
type AssistantService interface {
	// Answer handles a single question to completion.
	Answer(ctx context.Context, question string) (*domain.Answer, error)
}
