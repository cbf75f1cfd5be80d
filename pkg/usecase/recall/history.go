package recall

import (
	"context"

	"github.com/identra-io/ghostvault/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// History lists stored records up to limit. It queries with an empty filter,
// which the remote treats as a wildcard matching all records; ordering is
// whatever the remote returns.
func (u *UseCase) History(ctx context.Context, limit int) ([]*model.MemoryRecord, error) {
	records, err := u.memory.QueryMemories(ctx, "", limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query history")
	}

	return records, nil
}

// Recent lists up to limit records ordered by descending creation time.
func (u *UseCase) Recent(ctx context.Context, limit int) ([]*model.MemoryRecord, error) {
	records, err := u.memory.GetRecentMemories(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch recent memories")
	}

	return records, nil
}
