// Package embeddings provides the embedding backends used to vectorize
// snippet and query texts. The produced artifact assumes unit-normalized
// vectors, so every backend here returns vectors with an L2 norm of 1.
package embeddings

import (
	"context"
	"math"
)

// Embedder generates fixed-length unit-normalized embeddings for texts.
type Embedder interface {
	// Embed generates embeddings for one or more texts, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// normalize scales v to unit L2 norm in place. Zero vectors are left as-is.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
