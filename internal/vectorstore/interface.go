// Package vectorstore defines the embedding index contract and its backends.
//
// The retriever only needs a narrow slice of a vector database: upsert
// documents with flat metadata, run a nearest-neighbor query, and report
// whether the index has been built. Two backends implement it: an embedded
// chromem-go store (default, zero external services) and a Qdrant store for
// deployments that already run one.
package vectorstore

import (
	"context"
	"errors"
)

// Sentinel errors for vector store operations.
var (
	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyDocuments indicates empty or nil documents.
	ErrEmptyDocuments = errors.New("empty or nil documents")

	// ErrIndexUnavailable is returned when the index does not exist or holds
	// no documents. Callers use it to distinguish "no matches" from "system
	// not ready".
	ErrIndexUnavailable = errors.New("embedding index unavailable")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("failed to generate embeddings")

	// ErrConnectionFailed indicates the external vector database is
	// unreachable.
	ErrConnectionFailed = errors.New("failed to connect to vector store")
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedDocuments generates embeddings for multiple texts, one per input.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query. Some models
	// optimize differently for queries vs documents.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Document is a record prepared for indexing.
type Document struct {
	// ID is the stable record identifier.
	ID string

	// Content is the text that gets embedded.
	Content string

	// Metadata carries the record fields returned with search results.
	Metadata map[string]string
}

// SearchResult is one nearest-neighbor match.
type SearchResult struct {
	// ID is the document identifier.
	ID string

	// Content is the indexed text.
	Content string

	// Similarity is in [0,1], higher = more similar. Both backends use
	// cosine distance, so this equals 1 - normalized distance.
	Similarity float32

	// Metadata is the document metadata as stored.
	Metadata map[string]string
}

// Store is the embedding index contract.
//
// Stores are safe for concurrent reads. AddDocuments and Reset are
// administrative operations; callers must not run them concurrently with
// Search (the retriever serializes them behind its own lock).
type Store interface {
	// AddDocuments embeds and upserts documents keyed by their IDs.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search returns up to k documents nearest to the query, ordered by
	// descending similarity. Returns ErrIndexUnavailable when the index has
	// not been built. Fewer than k results are returned when the index
	// holds fewer documents; results are never padded.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Count reports the number of indexed documents.
	Count(ctx context.Context) (int, error)

	// Reset drops all indexed documents so the index can be rebuilt.
	Reset(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
