package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskmate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/deskmate/internal/core/domain"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return 3 }
func (f *fakeEmbedder) ModelName() string            { return "fake" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

func newTestSearcher() (*Searcher, *memory.PolicyStore) {
	store := memory.NewPolicyStore()
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"refunds":  {1, 0, 0},
		"refund policy text": {0.9, 0.1, 0},
		"shipping policy text": {0, 1, 0},
	}}
	return NewSearcher(store, embedder), store
}

func TestSearcher_IndexAndSearch(t *testing.T) {
	searcher, store := newTestSearcher()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "c1", DocumentID: "refunds", Content: "refund policy text", Position: 0},
		{ID: "c2", DocumentID: "shipping", Content: "shipping policy text", Position: 0},
	}
	require.NoError(t, searcher.Index(ctx, "policies_faqs", chunks))

	count, err := store.CountChunks(ctx, "policies_faqs")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	results, err := searcher.Search(ctx, "policies_faqs", "refunds", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "refund policy text", results[0].Content)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestSearcher_TopKLimits(t *testing.T) {
	searcher, _ := newTestSearcher()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "c1", DocumentID: "d", Content: "refund policy text"},
		{ID: "c2", DocumentID: "d", Content: "shipping policy text"},
	}
	require.NoError(t, searcher.Index(ctx, "col", chunks))

	results, err := searcher.Search(ctx, "col", "refunds", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearcher_EmptyCollection(t *testing.T) {
	searcher, _ := newTestSearcher()

	results, err := searcher.Search(context.Background(), "nothing", "query", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearcher_ReindexReplacesDocument(t *testing.T) {
	searcher, store := newTestSearcher()
	ctx := context.Background()

	first := []domain.Chunk{
		{ID: "c1", DocumentID: "refunds", Content: "refund policy text"},
		{ID: "c2", DocumentID: "refunds", Content: "shipping policy text"},
	}
	require.NoError(t, searcher.Index(ctx, "col", first))

	second := []domain.Chunk{
		{ID: "c3", DocumentID: "refunds", Content: "refund policy text"},
	}
	require.NoError(t, searcher.Index(ctx, "col", second))

	count, err := store.CountChunks(ctx, "col")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)

	// opposite vectors clamp to zero
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}))
	// mismatched lengths and zero norms score zero
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 0}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}
