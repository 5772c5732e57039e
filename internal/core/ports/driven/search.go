package driven

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// DocumentSearcher provides similarity search over a document
// collection. Results are ordered best-first with similarity
// monotonically non-increasing.
//
// The embedding, indexing and nearest-neighbour mechanics live entirely
// behind this interface; the core never sees a vector.
type DocumentSearcher interface {
	// Search returns the topK most similar chunks for the query text.
	// An empty result is not an error.
	Search(ctx context.Context, collection, query string, topK int) ([]domain.RetrievedChunk, error)
}

// DocumentIndexer adds chunks to a searchable collection. Implemented
// alongside DocumentSearcher by adapters that own their index.
type DocumentIndexer interface {
	// Index embeds and stores chunks under a collection.
	Index(ctx context.Context, collection string, chunks []domain.Chunk) error
}
