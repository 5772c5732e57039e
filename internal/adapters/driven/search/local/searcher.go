// Package local implements similarity search by scanning the chunk
// store directly. Good enough for the small collections a support
// assistant carries; swapping in a dedicated vector engine only
// requires another DocumentSearcher implementation.
package local

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
)

// Ensure Searcher implements both interfaces.
var (
	_ driven.DocumentSearcher = (*Searcher)(nil)
	_ driven.DocumentIndexer  = (*Searcher)(nil)
)

// Searcher embeds queries and ranks stored chunks by cosine
// similarity. Chunks and their embeddings live in the chunk store.
type Searcher struct {
	chunks   driven.ChunkStore
	embedder driven.EmbeddingService
}

// NewSearcher creates a searcher over the given chunk store and
// embedding service.
func NewSearcher(chunks driven.ChunkStore, embedder driven.EmbeddingService) *Searcher {
	return &Searcher{chunks: chunks, embedder: embedder}
}

// Search returns the topK chunks most similar to the query, best
// first. An empty collection yields an empty result, not an error.
func (s *Searcher) Search(ctx context.Context, collection, query string, topK int) ([]domain.RetrievedChunk, error) {
	if topK <= 0 {
		return nil, nil
	}

	stored, err := s.chunks.ListChunks(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	if len(stored) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]domain.RetrievedChunk, 0, len(stored))
	for _, chunk := range stored {
		results = append(results, domain.RetrievedChunk{
			Content:    chunk.Content,
			Similarity: cosineSimilarity(queryVec, chunk.Embedding),
			Metadata:   chunk.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Index embeds and stores chunks, replacing previously indexed chunks
// of the same documents.
func (s *Searcher) Index(ctx context.Context, collection string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		if seen[chunk.DocumentID] {
			continue
		}
		seen[chunk.DocumentID] = true
		if err := s.chunks.DeleteDocumentChunks(ctx, collection, chunk.DocumentID); err != nil {
			return fmt.Errorf("clearing chunks for %s: %w", chunk.DocumentID, err)
		}
	}

	if err := s.chunks.SaveChunks(ctx, collection, chunks); err != nil {
		return fmt.Errorf("saving chunks: %w", err)
	}
	return nil
}

// cosineSimilarity computes the cosine of the angle between two
// vectors, clamped to [0, 1]. Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
