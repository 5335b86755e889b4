// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CandidatesFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_candidates_filtered_total",
			Help: "Professionals removed by a matching filter",
		},
		[]string{"mode", "filter"},
	)

	BidsProduced = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_bids_produced",
			Help:    "Number of bids produced per request",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
		[]string{"mode"},
	)

	EmergencyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_emergency_requests_total",
			Help: "Requests treated as emergencies, by detection source",
		},
		[]string{"mode", "source"},
	)

	SnapshotLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_snapshot_loads_total",
			Help: "Professional snapshot loads by backend and outcome",
		},
		[]string{"source", "outcome"},
	)
)

// JobStarted marks a job active and returns a func that records its duration
// and releases the gauge.
func JobStarted(taskType string) func() {
	start := time.Now()
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return func() {
		WorkerJobsActive.WithLabelValues(taskType).Dec()
		WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
	}
}

func JobCompleted(taskType string) {
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
}

func JobFailed(taskType, errorCode string) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// RecordFiltered adds n to the filter's exclusion counter. Zero counts are
// skipped so unused label combinations stay absent.
func RecordFiltered(mode, filter string, n int) {
	if n <= 0 {
		return
	}
	CandidatesFiltered.WithLabelValues(mode, filter).Add(float64(n))
}

func RecordBids(mode string, n int) {
	BidsProduced.WithLabelValues(mode).Observe(float64(n))
}

func RecordEmergency(mode, source string) {
	EmergencyRequests.WithLabelValues(mode, source).Inc()
}

func RecordSnapshotLoad(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SnapshotLoads.WithLabelValues(source, outcome).Inc()
}
