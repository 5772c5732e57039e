package services

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
	"github.com/custodia-labs/deskmate/internal/logger"
)

const (
	// DefaultPolicyCollection is the chunk collection holding policy
	// and FAQ documents.
	DefaultPolicyCollection = "policies_faqs"

	// DefaultSearchResults is how many policy chunks the assistant
	// retrieves per question.
	DefaultSearchResults = 5
)

const noContextMessage = "I couldn't find relevant information. Please provide more specific details or check your uploaded documents."

// Assistant answers free-form support questions by aggregating context
// from the customer database and the policy collection, then asking the
// generator to synthesise a single answer over both.
type Assistant struct {
	records    driven.RecordStore
	searcher   driven.DocumentSearcher
	generator  driven.TextGenerator
	collection string
	nResults   int
}

var _ driving.AssistantService = (*Assistant)(nil)

// NewAssistant creates an assistant over the given stores. Collection
// and result count fall back to package defaults when zero-valued.
func NewAssistant(records driven.RecordStore, searcher driven.DocumentSearcher, generator driven.TextGenerator, collection string, nResults int) *Assistant {
	if collection == "" {
		collection = DefaultPolicyCollection
	}
	if nResults <= 0 {
		nResults = DefaultSearchResults
	}
	return &Assistant{
		records:    records,
		searcher:   searcher,
		generator:  generator,
		collection: collection,
		nResults:   nResults,
	}
}

// Answer gathers context relevant to the question and synthesises a
// cited answer. When no context is found the generator is never
// invoked and a fixed fallback answer is returned. Search and
// generation failures propagate; customer-database failures degrade to
// an answer without customer context.
func (a *Assistant) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	blocks, sources, err := a.gatherContext(ctx, question)
	if err != nil {
		return nil, err
	}

	if len(blocks) == 0 {
		logger.Debug("no context found for question: %s", question)
		return &domain.Answer{
			Question:   question,
			Text:       noContextMessage,
			Sources:    []domain.Source{},
			HasContext: false,
		}, nil
	}

	text, err := a.synthesize(ctx, question, blocks)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Question:   question,
		Text:       text,
		Sources:    sources,
		HasContext: true,
	}, nil
}
