package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	jobCounter      otelmetric.Int64Counter
	jobDuration     otelmetric.Float64Histogram
	matchCounter    otelmetric.Int64Counter
	matchDuration   otelmetric.Float64Histogram
	candidateCounts otelmetric.Int64Histogram
}

// New registers the OpenTelemetry Prometheus exporter on the default registry
// and installs the provider globally.
func New(serviceName, version string) *Observability {
	o := NewWithRegisterer(serviceName, version, promclient.DefaultRegisterer)
	if o.meterProvider != nil {
		otel.SetMeterProvider(o.meterProvider)
	}
	return o
}

// NewWithRegisterer is New without touching global state. On exporter
// failure it returns a no-op Observability.
func NewWithRegisterer(serviceName, version string, reg promclient.Registerer) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	matchCounter, _ := meter.Int64Counter(
		"matching.requests",
		otelmetric.WithDescription("Matching requests by mode and outcome"),
	)
	matchDuration, _ := meter.Float64Histogram(
		"matching.duration",
		otelmetric.WithDescription("Time spent ranking and pricing one request"),
		otelmetric.WithUnit("ms"),
	)
	candidateCounts, _ := meter.Int64Histogram(
		"matching.candidates",
		otelmetric.WithDescription("Professionals considered per request"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		jobCounter:      jobCounter,
		jobDuration:     jobDuration,
		matchCounter:    matchCounter,
		matchDuration:   matchDuration,
		candidateCounts: candidateCounts,
	}
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o == nil || o.jobCounter == nil {
		return
	}
	o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
}

// RecordMatch records one ranking pass. candidates is the snapshot size fed to
// the ranker.
func (o *Observability) RecordMatch(ctx context.Context, mode string, candidates int, duration time.Duration, outcome string) {
	if o == nil || o.matchCounter == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("mode", mode), attribute.String("outcome", outcome))
	o.matchCounter.Add(ctx, 1, attrs)
	o.matchDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	o.candidateCounts.Record(ctx, int64(candidates), otelmetric.WithAttributes(attribute.String("mode", mode)))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.meterProvider.Shutdown(ctx); err != nil {
		log.Printf("Failed to shut down meter provider: %v", err)
	}
}
