// cmd/worker-manager/health.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketplace-workers/internal/common/database"
)

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newHealthServer(addr string, broker healthChecker, pingers []database.Pinger) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK
		for name, err := range database.CheckAll(ctx, pingers...) {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if broker != nil {
			if err := broker.HealthCheck(ctx); err != nil {
				checks["zeebe"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		body := map[string]interface{}{"status": "ready"}
		if status != http.StatusOK {
			body["status"] = "not_ready"
			body["failures"] = checks
		}
		writeJSON(w, status, body)
	})

	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
