package driving

import "context"

// IngestService chunks, embeds and indexes policy/FAQ documents into the
// search collection.
type IngestService interface {
	// IngestDocument indexes a single document's text under the given
	// identifier, replacing any previous chunks for it. Returns the
	// number of chunks indexed.
	IngestDocument(ctx context.Context, docID, title, content string, metadata map[string]any) (int, error)

	// IngestDirectory indexes every .txt and .md file in a directory.
	// Returns the total number of chunks indexed.
	IngestDirectory(ctx context.Context, dir string) (int, error)
}
