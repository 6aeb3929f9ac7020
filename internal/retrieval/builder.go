package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
	"github.com/ivo-gavran/wikiart-chatbot/internal/index"
)

// Document renders the canonical description string embedded for an
// artwork. The index is built from exactly this rendering; changing it
// requires a rebuild.
func Document(a catalog.Artwork) string {
	return fmt.Sprintf("%s by %s - %s (%s): %s", a.Title, a.Artist, a.Style, a.Year, a.Description)
}

// Builder produces or reuses the persisted vector index for a catalog.
type Builder struct {
	embedder *Embedder
	path     string
	logger   *slog.Logger
}

// NewBuilder creates a Builder that persists the index at path.
func NewBuilder(embedder *Embedder, path string) *Builder {
	return &Builder{embedder: embedder, path: path, logger: slog.Default()}
}

// EnsureIndex loads the persisted index if one exists, otherwise embeds
// every artwork and builds, persists, and returns a fresh index.
//
// A loaded index must agree with the current catalog on vector count;
// a mismatch means the corpus changed since the index was built and is
// fatal rather than a source of silently wrong neighbors.
func (b *Builder) EnsureIndex(ctx context.Context, c *catalog.Catalog) (*index.Flat, error) {
	if index.Exists(b.path) {
		idx, err := index.Load(b.path)
		if err != nil {
			return nil, fmt.Errorf("loading index %s: %w", b.path, err)
		}
		if idx.Len() != c.Len() {
			return nil, fmt.Errorf("index %s holds %d vectors but catalog has %d artworks; delete the index to rebuild",
				b.path, idx.Len(), c.Len())
		}
		b.logger.Info("reusing persisted index", "path", b.path, "vectors", idx.Len())
		return idx, nil
	}

	return b.Rebuild(ctx, c)
}

// Rebuild embeds the whole catalog and writes a fresh index, replacing
// any existing artifact.
func (b *Builder) Rebuild(ctx context.Context, c *catalog.Catalog) (*index.Flat, error) {
	artworks := c.All()
	texts := make([]string, len(artworks))
	for i, a := range artworks {
		texts[i] = Document(a)
	}

	b.logger.Info("building index", "artworks", len(texts))
	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding catalog: %w", err)
	}

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	if dim == 0 {
		// Empty catalog: persist nothing, return an empty single-dim index
		// so searches cleanly yield no hits.
		return index.NewFlat(1)
	}

	idx, err := index.NewFlat(dim)
	if err != nil {
		return nil, err
	}
	for i, vec := range vectors {
		if err := idx.Add(vec); err != nil {
			return nil, fmt.Errorf("adding vector %d: %w", i, err)
		}
	}

	if err := idx.Save(b.path); err != nil {
		return nil, fmt.Errorf("persisting index: %w", err)
	}
	b.logger.Info("index saved", "path", b.path, "vectors", idx.Len(), "dim", idx.Dim())
	return idx, nil
}
