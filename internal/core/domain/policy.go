package domain

import "time"

// PolicyDocument is a named canonical policy document, e.g. "refund_policy".
// The full text is retrievable whole for the summary path; the RAG path
// searches over its chunks instead.
type PolicyDocument struct {
	// ID is the canonical policy identifier, e.g. "refund_policy".
	ID string

	// Title is the human-readable name.
	Title string

	// Content is the full policy text.
	Content string

	// CreatedAt is when the document was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Chunk is a bounded-size slice of a source document, the unit indexed
// and retrieved by similarity search. Chunks regenerate from source text
// and are not independently authored.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the source document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal chunk index within the document.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs (filename, type,
	// category and similar tags).
	Metadata map[string]any
}

// RetrievedChunk is a transient similarity-search hit. It is recomputed
// per query and never persisted.
type RetrievedChunk struct {
	// Content is the chunk text.
	Content string

	// Similarity is the relevance score in [0,1], derived from the
	// engine's distance metric.
	Similarity float64

	// Metadata carries the chunk's tags (doc_id, chunk_index, filename,
	// type, ...).
	Metadata map[string]any
}
