package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketplace-workers/internal/common/database"
)

type stubPinger struct {
	name string
	err  error
}

func (s stubPinger) Name() string               { return s.name }
func (s stubPinger) Ping(context.Context) error { return s.err }

type stubBroker struct{ err error }

func (s stubBroker) HealthCheck(context.Context) error { return s.err }

func serve(t *testing.T, srv *http.Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthServer(t *testing.T) {
	tests := []struct {
		name       string
		broker     stubBroker
		pingers    []database.Pinger
		wantStatus int
		wantFailed []string
	}{
		{"all ready", stubBroker{}, []database.Pinger{stubPinger{name: "postgres"}, stubPinger{name: "redis"}}, http.StatusOK, nil},
		{"redis down", stubBroker{}, []database.Pinger{stubPinger{name: "postgres"}, stubPinger{name: "redis", err: errors.New("refused")}}, http.StatusServiceUnavailable, []string{"redis"}},
		{"zeebe down", stubBroker{err: errors.New("unavailable")}, nil, http.StatusServiceUnavailable, []string{"zeebe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newHealthServer(":0", tt.broker, tt.pingers)

			rec, body := serve(t, srv, "/health")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "healthy", body["status"])

			rec, body = serve(t, srv, "/ready")
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantFailed == nil {
				assert.Equal(t, "ready", body["status"])
				return
			}
			failures := body["failures"].(map[string]interface{})
			for _, name := range tt.wantFailed {
				assert.Contains(t, failures, name)
			}
		})
	}
}

func TestHealthServer_Metrics(t *testing.T) {
	rec, _ := serve(t, newHealthServer(":0", nil, nil), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 5, 0, zap.NewNop(), "test")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("down")
	}, 2, 0, zap.NewNop(), "test")
	assert.EqualError(t, err, "down")
	assert.Equal(t, 2, calls)
}
