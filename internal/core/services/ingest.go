package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
	"github.com/custodia-labs/deskmate/internal/core/ports/driving"
	"github.com/custodia-labs/deskmate/internal/logger"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// Ingestor splits documents into overlapping chunks and hands them to
// the indexer, which embeds and stores them.
type Ingestor struct {
	indexer    driven.DocumentIndexer
	collection string
}

var _ driving.IngestService = (*Ingestor)(nil)

func NewIngestor(indexer driven.DocumentIndexer, collection string) *Ingestor {
	if collection == "" {
		collection = DefaultPolicyCollection
	}
	return &Ingestor{indexer: indexer, collection: collection}
}

// IngestDocument chunks and indexes a single document, replacing any
// previously indexed chunks for the same docID. Returns the number of
// chunks indexed.
func (ing *Ingestor) IngestDocument(ctx context.Context, docID, title, content string, metadata map[string]any) (int, error) {
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("document %s: %w", docID, domain.ErrInvalidInput)
	}

	pieces := chunkText(content, defaultChunkSize, defaultChunkOverlap)
	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		meta := map[string]any{
			"doc_id":      docID,
			"chunk_index": i,
			"filename":    title,
			"type":        domain.SourceTypeDocument,
		}
		for k, v := range metadata {
			meta[k] = v
		}
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: docID,
			Content:    piece,
			Position:   i,
			Metadata:   meta,
		})
	}

	if err := ing.indexer.Index(ctx, ing.collection, chunks); err != nil {
		return 0, fmt.Errorf("indexing document %s: %w", docID, err)
	}

	logger.Info("indexed %s: %d chunks", docID, len(chunks))
	return len(chunks), nil
}

// IngestDirectory ingests every .txt and .md file in dir,
// non-recursively. The filename without extension becomes the document
// ID. Returns the total number of chunks indexed.
func (ing *Ingestor) IngestDirectory(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return total, fmt.Errorf("reading %s: %w", path, err)
		}
		docID := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		n, err := ing.IngestDocument(ctx, docID, entry.Name(), string(content), nil)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// chunkText splits text into chunks of at most size runes with the
// given overlap, preferring to break on paragraph, then line, then word
// boundaries near the end of each chunk.
func chunkText(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// breakPoint looks backwards from end for a natural boundary within the
// second half of the chunk.
func breakPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	half := (end - start) / 2
	for _, sep := range []string{"\n\n", "\n", " "} {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		// idx is a byte offset; compare in runes like half is.
		ridx := len([]rune(window[:idx]))
		if ridx > half {
			return start + ridx + len([]rune(sep))
		}
	}
	return end
}
