// cmd/worker-manager/backends.go
package main

import (
	"context"
	"fmt"
	"time"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/database"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/matching/snapshot"
)

const (
	readyAttempts = 15
	readyDelay    = 2 * time.Second
)

type closer interface {
	database.Pinger
	Close() error
}

// backends owns the connections behind the professional snapshot source.
type backends struct {
	Source  snapshot.Source
	clients []closer
}

// openBackends connects the configured snapshot store and, when a cache TTL
// is set, puts the redis read-through cache in front of it.
func openBackends(ctx context.Context, cfg *config.Config, log logger.Logger) (*backends, error) {
	b := &backends{}

	switch cfg.Matching.SnapshotSource {
	case config.SnapshotSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		b.clients = append(b.clients, pg)
		b.Source = snapshot.NewPostgresSource(pg.GetDB())

	case config.SnapshotSourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		b.clients = append(b.clients, es)
		b.Source = snapshot.NewElasticsearchSource(es.Client, cfg.Matching.ElasticsearchIndex)

	default:
		return nil, fmt.Errorf("unsupported snapshot source %q", cfg.Matching.SnapshotSource)
	}

	if ttl := cfg.Matching.CacheTTL(); ttl > 0 {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.clients = append(b.clients, rdb)
		b.Source = snapshot.NewCachedSource(b.Source, rdb.Client, ttl, log)
	}

	for _, c := range b.clients {
		if err := database.WaitReady(ctx, c, readyAttempts, readyDelay); err != nil {
			b.Close()
			return nil, err
		}
		log.Info("backend ready", map[string]interface{}{"backend": c.Name()})
	}
	return b, nil
}

func (b *backends) Pingers() []database.Pinger {
	out := make([]database.Pinger, 0, len(b.clients))
	for _, c := range b.clients {
		out = append(out, c)
	}
	return out
}

func (b *backends) Close() {
	for _, c := range b.clients {
		_ = c.Close()
	}
}
