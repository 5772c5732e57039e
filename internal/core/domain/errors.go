package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCustomerName indicates no customer name could be extracted
	// from the question. Terminal for the current request; the caller is
	// expected to re-prompt the user, not retry.
	ErrNoCustomerName = errors.New("no customer name identified")

	// ErrLLMUnavailable indicates the text-generation service is not
	// configured. Answer synthesis is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Similarity search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSearchUnavailable indicates the document searcher is not
	// configured. The RAG path is disabled.
	ErrSearchUnavailable = errors.New("document search unavailable")
)
