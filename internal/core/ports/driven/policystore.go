package driven

import (
	"context"

	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// PolicyStore persists canonical policy documents whole. The RAG path
// does not read from here; it searches the chunk index instead.
type PolicyStore interface {
	// GetFullText returns the full text of a policy document.
	// Returns domain.ErrNotFound for unknown policy IDs.
	GetFullText(ctx context.Context, policyID string) (string, error)

	// SavePolicy stores or updates a policy document.
	SavePolicy(ctx context.Context, doc *domain.PolicyDocument) error

	// ListPolicies returns all stored policy documents.
	ListPolicies(ctx context.Context) ([]domain.PolicyDocument, error)
}

// ChunkStore persists document chunks and their embeddings per
// collection. Backed by SQLite; embeddings are stored as little-endian
// float32 blobs.
type ChunkStore interface {
	// SaveChunks stores chunks under a collection.
	SaveChunks(ctx context.Context, collection string, chunks []domain.Chunk) error

	// ListChunks returns all chunks in a collection.
	ListChunks(ctx context.Context, collection string) ([]domain.Chunk, error)

	// DeleteDocumentChunks removes all chunks of one document from a
	// collection. Used on re-ingest.
	DeleteDocumentChunks(ctx context.Context, collection, documentID string) error

	// CountChunks returns the number of chunks in a collection.
	CountChunks(ctx context.Context, collection string) (int, error)
}
