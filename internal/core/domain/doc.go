// Package domain defines the core business entities for Deskmate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CustomerRecord: A customer with owned orders and support tickets
//   - PolicyDocument: A canonical company policy with full text
//   - RetrievedChunk: A transient similarity-search hit
//   - Classification: The three-way routing decision for a question
//   - AgentResult: The tagged union every agent returns
//   - Answer: The combined assistant response with cited sources
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
