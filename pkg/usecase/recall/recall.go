package recall

import (
	"github.com/identra-io/ghostvault/pkg/adapter"
)

// Default semantic search parameters.
const (
	DefaultTopK      = 10
	DefaultThreshold = 0.7
)

// UseCase provides memory retrieval: history listing, recent fetch and
// semantic search.
type UseCase struct {
	memory    adapter.MemoryCapability
	embedder  adapter.Embedder
	topK      int
	threshold float64
}

// Option is a functional option for UseCase.
type Option func(*UseCase)

// WithTopK sets the maximum number of semantic search results.
func WithTopK(k int) Option {
	return func(uc *UseCase) {
		uc.topK = k
	}
}

// WithThreshold sets the minimum similarity score for search matches.
func WithThreshold(t float64) Option {
	return func(uc *UseCase) {
		uc.threshold = t
	}
}

// New creates a recall UseCase. embedder may be nil when only history and
// recent listing are used.
func New(memory adapter.MemoryCapability, embedder adapter.Embedder, opts ...Option) *UseCase {
	uc := &UseCase{
		memory:    memory,
		embedder:  embedder,
		topK:      DefaultTopK,
		threshold: DefaultThreshold,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
