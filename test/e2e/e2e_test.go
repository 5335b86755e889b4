//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"marketplace-workers/internal/common/camunda"
	"marketplace-workers/internal/common/camunda/camundatest"
	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/database"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/observability"
	"marketplace-workers/internal/matching/bids"
	"marketplace-workers/internal/matching/snapshot"
	mp "marketplace-workers/internal/workers/matching/match-professionals"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS professionals (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	categories            TEXT[] NOT NULL,
	capability_tags       TEXT[] NOT NULL DEFAULT '{}',
	difficulty_tolerance  TEXT,
	rating                DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count          INTEGER NOT NULL DEFAULT 0,
	lat                   DOUBLE PRECISION,
	lng                   DOUBLE PRECISION,
	response_time_minutes INTEGER NOT NULL DEFAULT 0,
	emergency_mode        BOOLEAN NOT NULL DEFAULT FALSE,
	hourly_rate           DOUBLE PRECISION NOT NULL DEFAULT 0,
	years_experience      INTEGER NOT NULL DEFAULT 0,
	completed_jobs        INTEGER NOT NULL DEFAULT 0,
	specializations       TEXT[] NOT NULL DEFAULT '{}',
	active                BOOLEAN NOT NULL DEFAULT TRUE
)`

type seedRow struct {
	id, name, tolerance string
	tags, specs         []string
	rating              float64
	reviews             int
	lat, lng            float64
	response            int
	emergency           bool
	rate                float64
	years, jobs         int
}

var seed = []seedRow{
	{"e2e-near-easy", "Quick Fix", "easy", []string{"plumbing"}, nil, 4.0, 10, 32.0873, 34.7818, 20, true, 90, 0, 0},
	{"e2e-hard-emerg", "Night Plumbers", "hard", []string{"leak"}, []string{"emergency repairs"}, 4.6, 80, 32.1000, 34.7800, 8, true, 180, 6, 300},
	{"e2e-hard-top", "Cohen & Sons", "hard", []string{"plumbing", "leak"}, []string{"pipe repair", "kitchen plumbing"}, 5.0, 300, 32.0900, 34.7850, 30, false, 150, 15, 900},
	{"e2e-far", "Haifa Plumbing", "hard", []string{"plumbing"}, nil, 4.9, 500, 32.7940, 34.9890, 5, true, 200, 25, 2000},
}

const leakRequest = `{
  "request": {
    "category": "Plumbing",
    "description": "Urgent! Pipe burst under the sink, the kitchen is flooding",
    "issueTag": "leak",
    "accessibility": "hard",
    "complexity": "critical",
    "urgency": "immediate",
    "location": {"lat": 32.0853, "lng": 34.7818}
  }
}`

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	return cfg
}

func connect(t *testing.T, cfg *config.Config) (*database.PostgresClient, *database.RedisClient) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)

	if failures := database.CheckAll(ctx, pg, rdb); len(failures) > 0 {
		pg.Close()
		rdb.Close()
		t.Skipf("backing services unavailable: %v", failures)
	}
	t.Cleanup(func() {
		pg.Close()
		rdb.Close()
	})
	return pg, rdb
}

func seedProfessionals(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(schemaSQL)
	require.NoError(t, err)

	for _, r := range seed {
		_, err := db.Exec(`INSERT INTO professionals
			(id, name, categories, capability_tags, difficulty_tolerance, rating, review_count, lat, lng,
			 response_time_minutes, emergency_mode, hourly_rate, years_experience, completed_jobs, specializations)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (id) DO NOTHING`,
			r.id, r.name, pq.Array([]string{"plumbing"}), pq.Array(r.tags), r.tolerance, r.rating, r.reviews,
			r.lat, r.lng, r.response, r.emergency, r.rate, r.years, r.jobs, pq.Array(r.specs))
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		for _, r := range seed {
			_, _ = db.Exec(`DELETE FROM professionals WHERE id = $1`, r.id)
		}
	})
}

func TestMatchProfessionals_PostgresSnapshot(t *testing.T) {
	cfg := loadConfig(t)
	pg, rdb := connect(t, cfg)
	seedProfessionals(t, pg.GetDB())

	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	source := snapshot.NewCachedSource(snapshot.NewPostgresSource(pg.GetDB()), rdb.Client, time.Minute, log)
	obs := observability.NewWithRegisterer("e2e", "test", promclient.NewRegistry())

	workerCfg := mp.LoadConfig(config.GetWorkerConfig(cfg, mp.TaskType), cfg.Matching)
	workerCfg.IDs = bids.FixedGenerator{Prefix: "bid"}
	handler := mp.NewHandler(workerCfg, source, obs, log)

	// The second run is served from redis and must match the first.
	for run := 0; run < 2; run++ {
		client := camundatest.NewJobClient()
		handler.Handle(client, camundatest.NewJob(mp.TaskType, int64(run+1), 3, leakRequest))

		require.Len(t, client.Completed(), 1, "run %d", run)
		var out mp.Output
		require.NoError(t, client.CompletedVariables(&out))

		var ids []string
		for _, rp := range out.RankedProfessionals {
			ids = append(ids, rp.Professional.ID)
		}
		assert.Equal(t, []string{"e2e-hard-emerg", "e2e-hard-top"}, ids)
		require.Len(t, out.Bids, 2)
		assert.Equal(t, "e2e-hard-emerg", out.Bids[0].ProfessionalID)
	}
}

func TestZeebeTopology(t *testing.T) {
	cfg := loadConfig(t)
	client, err := camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		t.Skipf("zeebe unavailable: %v", err)
	}
	defer client.Close()

	assert.NoError(t, client.HealthCheck(context.Background()))
}
