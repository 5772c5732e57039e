package domain

// Source types reported in Answer sources.
const (
	// SourceTypeCustomerData marks evidence from the record store.
	SourceTypeCustomerData = "customer_data"

	// SourceTypeDocument marks evidence from similarity search.
	SourceTypeDocument = "document"
)

// Source identifies one evidence block behind an Answer.
type Source struct {
	// ID is the 1-based position of the block in the prompt context.
	ID int

	// Label is the display name: "customer_database" for record-store
	// evidence, or the originating filename (extension stripped) for
	// document evidence.
	Label string

	// Relevance is the similarity as a percentage string, e.g. "87%".
	// Record-store evidence is always "100%".
	Relevance string

	// Type is one of the SourceType constants, or a chunk-specific tag.
	Type string
}

// Answer is the combined assistant response for a single question.
type Answer struct {
	// Question is the original question text.
	Question string

	// Text is the final answer with inline citation markers stripped.
	Text string

	// Sources lists the evidence blocks in prompt order,
	// customer-context first.
	Sources []Source

	// HasContext is false when neither evidence path produced context
	// and Text is the fixed fallback message.
	HasContext bool
}
