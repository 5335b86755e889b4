// internal/matching/snapshot/source.go
package snapshot

import (
	"context"
	"errors"

	"marketplace-workers/internal/models"
)

// DefaultLimit caps how many professionals one snapshot may hold.
const DefaultLimit = 500

var (
	ErrSnapshotLoadFailed = errors.New("SNAPSHOT_LOAD_FAILED")
	ErrSnapshotTimeout    = errors.New("SNAPSHOT_TIMEOUT")
)

// Query selects the professionals worth ranking for one request.
type Query struct {
	Category string
	Center   models.GeoPoint
	RadiusKm float64
	Limit    int
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// Source loads a read-only professional snapshot. Implementations may return
// professionals slightly outside the radius; the ranker applies the exact
// distance filter.
type Source interface {
	Load(ctx context.Context, q Query) ([]models.Professional, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, q Query) ([]models.Professional, error)

func (f SourceFunc) Load(ctx context.Context, q Query) ([]models.Professional, error) {
	return f(ctx, q)
}

// wrapLoadErr maps context expiry to ErrSnapshotTimeout and everything else
// to ErrSnapshotLoadFailed.
func wrapLoadErr(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrSnapshotTimeout, err)
	}
	return errors.Join(ErrSnapshotLoadFailed, errors.New(op), err)
}
