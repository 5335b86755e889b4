// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: marketplace
    user: matcher
`

// ==========================
// Defaults
// ==========================

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "marketplace-workers", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)

	assert.Equal(t, 40.0, cfg.Matching.MaxRadiusKm)
	assert.Equal(t, 10, cfg.Matching.ResultLimit)
	assert.Equal(t, 3.0, cfg.Matching.TravelFeePerKm)
	assert.False(t, cfg.Matching.IncludeExcluded)
	assert.Equal(t, SnapshotSourcePostgres, cfg.Matching.SnapshotSource)
	assert.Equal(t, 500, cfg.Matching.SnapshotLimit)
	assert.Equal(t, "professionals", cfg.Matching.ElasticsearchIndex)
	assert.Equal(t, time.Duration(0), cfg.Matching.CacheTTL())

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_MatchingAndWorkers(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
  redis:
    address: localhost:6379
matching:
  max_radius_km: 25
  result_limit: 5
  travel_fee_per_km: 4.5
  include_excluded: true
  snapshot_cache_ttl_ms: 90000
workers:
  match-professionals:
    enabled: true
    timeout: 5000
  generate-bids:
    enabled: false
`))
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.Matching.MaxRadiusKm)
	assert.Equal(t, 5, cfg.Matching.ResultLimit)
	assert.Equal(t, 4.5, cfg.Matching.TravelFeePerKm)
	assert.True(t, cfg.Matching.IncludeExcluded)
	assert.Equal(t, 90*time.Second, cfg.Matching.CacheTTL())

	mp := GetWorkerConfig(cfg, "match-professionals")
	assert.True(t, mp.Enabled)
	assert.Equal(t, 5000, mp.Timeout)
	assert.Equal(t, 5, mp.MaxJobsActive)
	assert.Equal(t, 3, mp.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "generate-bids"))
	assert.True(t, IsWorkerEnabled(cfg, "classify-request"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "classify-request").Timeout)
}

// ==========================
// Environment handling
// ==========================

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`    password: ${TEST_PG_PASSWORD}
`))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "password=s3cret")
}

func TestLoadFromFile_EnvFallbacks(t *testing.T) {
	t.Setenv("DB_USER", "from-env")
	t.Setenv("ZEEBE_ADDRESS", "zeebe:26500")
	cfg, err := LoadFromFile(writeConfig(t, `
database:
  postgres:
    host: localhost
    database: marketplace
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Postgres.User)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
}

// ==========================
// Validation
// ==========================

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: localhost\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name:    "postgres source without host",
			body:    "camunda:\n  broker_address: localhost:26500\n",
			wantErr: "database.postgres.host is required",
		},
		{
			name:    "elasticsearch source without address",
			body:    "camunda:\n  broker_address: localhost:26500\nmatching:\n  snapshot_source: elasticsearch\n",
			wantErr: "database.elasticsearch.addresses or url is required",
		},
		{
			name:    "unknown source",
			body:    "camunda:\n  broker_address: localhost:26500\nmatching:\n  snapshot_source: mongo\n",
			wantErr: `matching.snapshot_source "mongo" is not supported`,
		},
		{
			name:    "cache without redis",
			body:    minimalConfig + "matching:\n  snapshot_cache_ttl_ms: 1000\n",
			wantErr: "database.redis.address is required",
		},
		{
			name:    "negative radius",
			body:    minimalConfig + "matching:\n  max_radius_km: -5\n",
			wantErr: "matching.max_radius_km must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_ElasticsearchSource(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  elasticsearch:
    addresses: ["http://es-1:9200", "http://es-2:9200"]
matching:
  snapshot_source: elasticsearch
  elasticsearch_index: pros-v2
`))
	require.NoError(t, err)
	assert.Equal(t, "http://es-1:9200", cfg.Database.Elasticsearch.GetURL())
	assert.Equal(t, "pros-v2", cfg.Matching.ElasticsearchIndex)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
