package recall

import (
	"context"

	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Search embeds the query locally and delegates similarity search to the
// remote. Results arrive ordered by descending score with the threshold
// already applied; they are returned as-is.
//
// Match content is returned exactly as stored: this flow does not decrypt.
// Callers that vaulted ciphertext and need plaintext must run Decrypt on
// each result themselves.
func (u *UseCase) Search(ctx context.Context, query string) ([]*model.SearchMatch, error) {
	vector, err := u.embedder.Embed(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query")
	}

	matches, err := u.memory.SearchMemories(ctx, vector, u.topK, u.threshold)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search memories")
	}

	return matches, nil
}
