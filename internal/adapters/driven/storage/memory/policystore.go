package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
)

// Ensure PolicyStore implements the interfaces.
var (
	_ driven.PolicyStore = (*PolicyStore)(nil)
	_ driven.ChunkStore  = (*PolicyStore)(nil)
)

// PolicyStore is an in-memory implementation of driven.PolicyStore and
// driven.ChunkStore.
type PolicyStore struct {
	mu       sync.RWMutex
	policies map[string]domain.PolicyDocument
	chunks   map[string][]domain.Chunk // keyed by collection
}

// NewPolicyStore creates a new in-memory policy store.
func NewPolicyStore() *PolicyStore {
	return &PolicyStore{
		policies: make(map[string]domain.PolicyDocument),
		chunks:   make(map[string][]domain.Chunk),
	}
}

// GetFullText returns the full text of a policy document.
func (s *PolicyStore) GetFullText(_ context.Context, policyID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.policies[policyID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return doc.Content, nil
}

// SavePolicy stores or updates a policy document.
func (s *PolicyStore) SavePolicy(_ context.Context, doc *domain.PolicyDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[doc.ID] = *doc
	return nil
}

// ListPolicies returns all stored policy documents ordered by ID.
func (s *PolicyStore) ListPolicies(_ context.Context) ([]domain.PolicyDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.PolicyDocument, 0, len(s.policies))
	for _, doc := range s.policies {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// SaveChunks stores chunks under a collection.
func (s *PolicyStore) SaveChunks(_ context.Context, collection string, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[collection] = append(s.chunks[collection], chunks...)
	return nil
}

// ListChunks returns all chunks in a collection.
func (s *PolicyStore) ListChunks(_ context.Context, collection string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, len(s.chunks[collection]))
	copy(out, s.chunks[collection])
	return out, nil
}

// DeleteDocumentChunks removes all chunks of one document from a
// collection.
func (s *PolicyStore) DeleteDocumentChunks(_ context.Context, collection, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []domain.Chunk
	for _, chunk := range s.chunks[collection] {
		if chunk.DocumentID != documentID {
			kept = append(kept, chunk)
		}
	}
	s.chunks[collection] = kept
	return nil
}

// CountChunks returns the number of chunks in a collection.
func (s *PolicyStore) CountChunks(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks[collection]), nil
}
