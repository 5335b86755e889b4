// internal/workers/matching/generate-bids/config.go
package generatebids

import (
	"time"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/matching/bids"
	"marketplace-workers/internal/matching/ranker"
	"marketplace-workers/internal/matching/snapshot"
	"marketplace-workers/internal/workers/matching/matchjob"
)

type Config struct {
	Timeout        time.Duration
	Defaults       ranker.Options
	SnapshotSource string
	SnapshotLimit  int
	IDs            bids.IDGenerator
}

func LoadConfig(worker config.WorkerConfig, matching config.MatchingConfig) *Config {
	cfg := &Config{
		Timeout:        30 * time.Second,
		Defaults:       matchjob.DefaultsFrom(matching),
		SnapshotSource: matching.SnapshotSource,
		SnapshotLimit:  matching.SnapshotLimit,
		IDs:            bids.UUIDGenerator{},
	}
	if worker.Timeout > 0 {
		cfg.Timeout = config.GetDuration(worker.Timeout)
	}
	if cfg.SnapshotLimit <= 0 {
		cfg.SnapshotLimit = snapshot.DefaultLimit
	}
	return cfg
}
