// internal/matching/snapshot/cache.go
package snapshot

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/matching/geo"
	"marketplace-workers/internal/models"
)

const (
	cacheKeyPrefix  = "matching:snapshot:"
	DefaultCacheTTL = 2 * time.Minute

	// cellSlackKm covers the largest offset between a centre and its cell
	// centre: half of 0.001 degree on both axes is under 80 m.
	cellSlackKm = 0.08
)

// CellQuery snaps q to its cache cell: centre rounded to 0.001 degree and the
// radius widened by cellSlackKm, so the rows cover every request in the cell.
func CellQuery(q Query) Query {
	radius := q.RadiusKm
	if radius <= 0 {
		radius = geo.DefaultMaxRadiusKm
	}
	return Query{
		Category: strings.ToLower(q.Category),
		Center:   models.GeoPoint{Lat: roundTo(q.Center.Lat, 1000), Lng: roundTo(q.Center.Lng, 1000)},
		RadiusKm: radius + cellSlackKm,
		Limit:    q.limit(),
	}
}

// CacheKey derives the redis key for the cell q falls in.
func CacheKey(q Query) string {
	cell := CellQuery(q)
	raw := fmt.Sprintf("%s|%.3f|%.3f|%g|%d",
		cell.Category, cell.Center.Lat, cell.Center.Lng, cell.RadiusKm, cell.Limit)
	sum := sha1.Sum([]byte(raw))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// CachedSource is a read-through redis cache in front of another Source.
// Redis failures are logged and bypassed.
type CachedSource struct {
	next   Source
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{next: next, redis: rdb, ttl: ttl, logger: log}
}

func (c *CachedSource) Load(ctx context.Context, q Query) ([]models.Professional, error) {
	key := CacheKey(q)

	cached, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var pros []models.Professional
		if jsonErr := json.Unmarshal(cached, &pros); jsonErr == nil {
			c.logger.Debug("snapshot cache hit", map[string]interface{}{"key": key, "count": len(pros)})
			return pros, nil
		}
		c.logger.Warn("discarding undecodable snapshot", map[string]interface{}{"key": key})
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("snapshot cache read failed", map[string]interface{}{"key": key, "error": err})
	}

	pros, err := c.next.Load(ctx, CellQuery(q))
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(pros)
	if err != nil {
		return pros, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed", map[string]interface{}{"key": key, "error": err})
	}
	return pros, nil
}
