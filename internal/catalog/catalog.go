// Package catalog loads and holds the artwork metadata corpus.
//
// The catalog is read-only after load. An artwork's identity is its
// position in the load order; that position is also the key to its
// embedding vector in the index.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMetadataNotFound is returned when the metadata file does not exist.
// There is no valid session without data, so callers should treat this
// as fatal at startup.
var ErrMetadataNotFound = errors.New("artwork metadata not found")

// Artwork is a single immutable record from the metadata corpus.
// Year is kept as text exactly as it appears in the source file.
type Artwork struct {
	Title       string
	Artist      string
	Year        string
	Style       string
	Genre       string
	Description string
}

// Catalog is the ordered, immutable collection of artworks.
type Catalog struct {
	artworks []Artwork
}

// columns is the required header of the metadata CSV, in order.
var columns = []string{"title", "artist", "year", "style", "genre", "description"}

// Load reads the metadata CSV at path. Fields may contain embedded commas
// and newlines; encoding/csv handles the quoting.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, path)
		}
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c, nil
}

// Read parses CSV metadata from r. The first row must be the header.
func Read(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("metadata is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, want := range columns {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], want)
		}
	}

	var artworks []Artwork
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(artworks)+1, err)
		}
		artworks = append(artworks, Artwork{
			Title:       row[0],
			Artist:      row[1],
			Year:        row[2],
			Style:       row[3],
			Genre:       row[4],
			Description: row[5],
		})
	}

	return &Catalog{artworks: artworks}, nil
}

// New builds a Catalog from already-parsed artworks. Used by tests and
// callers that source records elsewhere.
func New(artworks []Artwork) *Catalog {
	return &Catalog{artworks: artworks}
}

// Len returns the number of artworks.
func (c *Catalog) Len() int {
	return len(c.artworks)
}

// Get returns the artwork at position i.
func (c *Catalog) Get(i int) (Artwork, error) {
	if i < 0 || i >= len(c.artworks) {
		return Artwork{}, fmt.Errorf("artwork position %d out of range [0, %d)", i, len(c.artworks))
	}
	return c.artworks[i], nil
}

// All returns the artworks in load order. The returned slice must not
// be modified.
func (c *Catalog) All() []Artwork {
	return c.artworks
}
