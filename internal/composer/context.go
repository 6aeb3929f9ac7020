// Package composer renders retrieved artworks into the grounding context
// block and assembles the generation prompt.
//
// The exact formatting here is part of the observable contract: the
// context block is what the model sees as evidence, so drift in field
// names, ordering, or separators changes model behavior.
package composer

import (
	"fmt"
	"strings"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
)

// FormatArtwork renders the six-field block for one artwork, one
// "Field: value" line per field, no trailing newline.
func FormatArtwork(a catalog.Artwork) string {
	return fmt.Sprintf("Title: %s\nArtist: %s\nYear: %s\nStyle: %s\nGenre: %s\nDescription: %s",
		a.Title, a.Artist, a.Year, a.Style, a.Genre, a.Description)
}

// FormatArtworks joins individual blocks with a blank line, preserving
// the input ordering.
func FormatArtworks(artworks []catalog.Artwork) string {
	blocks := make([]string, len(artworks))
	for i, a := range artworks {
		blocks[i] = FormatArtwork(a)
	}
	return strings.Join(blocks, "\n\n")
}
