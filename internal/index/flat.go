// Package index implements a flat (exhaustive) vector index with squared
// Euclidean distance search, plus a persisted binary artifact format.
//
// Vectors are stored in insertion order. Position i in the index
// corresponds to position i in the catalog; the two must never be
// reordered independently.
package index

import "fmt"

// Hit is one nearest-neighbor result.
type Hit struct {
	Position int
	Distance float32 // squared Euclidean distance
}

// Flat is an exhaustive-search index over fixed-dimension vectors.
// It is safe for concurrent reads once built; building and searching
// must not overlap.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty index for vectors of the given dimensionality.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}
	return &Flat{dim: dim}, nil
}

// Dim returns the vector dimensionality.
func (f *Flat) Dim() int {
	return f.dim
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Add appends a vector. The index keeps its own copy.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vec), f.dim)
	}
	stored := make([]float32, f.dim)
	copy(stored, vec)
	f.vectors = append(f.vectors, stored)
	return nil
}

// Search returns the k nearest stored vectors to query, ordered by
// ascending squared Euclidean distance. If k exceeds the number of stored
// vectors, all of them are returned. An empty index yields no hits.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), f.dim)
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(f.vectors) == 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	hits := make([]Hit, 0, k)
	for pos, vec := range f.vectors {
		d := squaredL2(query, vec)
		hits = insertHit(hits, Hit{Position: pos, Distance: d}, k)
	}
	return hits, nil
}

// insertHit keeps hits sorted ascending by distance, capped at k entries.
// Insertion sort is fine here: k is small (top-k retrieval).
func insertHit(hits []Hit, h Hit, k int) []Hit {
	if len(hits) == k && h.Distance >= hits[len(hits)-1].Distance {
		return hits
	}
	if len(hits) < k {
		hits = append(hits, h)
	} else {
		hits[len(hits)-1] = h
	}
	for i := len(hits) - 1; i > 0 && hits[i].Distance < hits[i-1].Distance; i-- {
		hits[i], hits[i-1] = hits[i-1], hits[i]
	}
	return hits
}

func squaredL2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(sum)
}
