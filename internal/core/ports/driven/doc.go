// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core treats every collaborator behind
// these interfaces as external and already concurrency-safe: the record
// store, the similarity-search engine, the embedding service and the
// text-generation service.
package driven
