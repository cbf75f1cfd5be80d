package adapter

import (
	"context"
	"hash/fnv"
	"math"
	"sync"
)

// Embedder converts free text into a fixed-dimension vector for semantic
// search. The vault treats the model as a black box.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// SerialEmbedder serializes access to an embedder whose underlying model
// session is not reentrant. Concurrent search requests queue rather than
// race.
type SerialEmbedder struct {
	mu    sync.Mutex
	inner Embedder
}

func NewSerialEmbedder(inner Embedder) *SerialEmbedder {
	return &SerialEmbedder{inner: inner}
}

func (s *SerialEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Embed(ctx, text)
}

func (s *SerialEmbedder) Dimensions() int {
	return s.inner.Dimensions()
}

// HashEmbedder generates deterministic pseudo-embeddings from a text hash.
// It needs no model files, which makes it the default for development and
// tests; real deployments use the ONNX embedder.
type HashEmbedder struct {
	dimensions int
}

func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &HashEmbedder{dimensions: dimensions}
}

func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, e.dimensions)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}

	return normalize(vec), nil
}

func (e *HashEmbedder) Dimensions() int {
	return e.dimensions
}

func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
