package retrieval

import (
	"context"
	"fmt"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
	"github.com/ivo-gavran/wikiart-chatbot/internal/index"
)

// SearchError wraps an embedding or index failure during a search.
// It is recoverable per-turn: the conversation manager reports it to the
// user and continues.
type SearchError struct {
	cause error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("failed to perform search: %v", e.cause)
}

func (e *SearchError) Unwrap() error {
	return e.cause
}

// Retriever answers top-k semantic searches over the artwork catalog.
// The index and catalog are read-only here and may be shared across
// concurrent Retrievers.
type Retriever struct {
	embedder *Embedder
	idx      *index.Flat
	catalog  *catalog.Catalog
}

// NewRetriever creates a Retriever. The index must have been built from
// the same catalog with the same embedder configuration.
func NewRetriever(embedder *Embedder, idx *index.Flat, c *catalog.Catalog) *Retriever {
	return &Retriever{embedder: embedder, idx: idx, catalog: c}
}

// Search embeds query and returns the k closest artworks, best match
// first. Over-large k is clamped to the catalog size; an empty catalog
// yields an empty result. Failures are reported as *SearchError and are
// not retried here.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]catalog.Artwork, error) {
	if k <= 0 {
		return nil, &SearchError{cause: fmt.Errorf("k must be positive, got %d", k)}
	}
	if r.catalog.Len() == 0 {
		return nil, nil
	}

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &SearchError{cause: err}
	}

	hits, err := r.idx.Search(vec, k)
	if err != nil {
		return nil, &SearchError{cause: err}
	}

	results := make([]catalog.Artwork, 0, len(hits))
	for _, h := range hits {
		a, err := r.catalog.Get(h.Position)
		if err != nil {
			return nil, &SearchError{cause: fmt.Errorf("index returned stale position: %w", err)}
		}
		results = append(results, a)
	}
	return results, nil
}
