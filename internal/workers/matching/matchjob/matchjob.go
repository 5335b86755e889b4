// internal/workers/matching/matchjob/matchjob.go
package matchjob

import (
	"context"
	"errors"
	"strings"

	"marketplace-workers/internal/common/config"
	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/matching/ranker"
	"marketplace-workers/internal/matching/snapshot"
	"marketplace-workers/internal/models"
)

// SourceInline marks professionals supplied in the job variables.
const SourceInline = "inline"

// Options are the per-job overrides of the configured ranking defaults.
type Options struct {
	MaxRadiusKm     *float64 `json:"maxRadiusKm,omitempty"`
	Limit           *int     `json:"limit,omitempty"`
	IncludeExcluded *bool    `json:"includeExcluded,omitempty"`
}

// Apply layers o over defaults and pins the mode.
func (o *Options) Apply(defaults ranker.Options, mode ranker.Mode) ranker.Options {
	opts := defaults
	opts.Mode = mode
	if o == nil {
		return opts
	}
	if o.MaxRadiusKm != nil {
		opts.MaxRadiusKm = *o.MaxRadiusKm
	}
	if o.Limit != nil {
		opts.Limit = *o.Limit
	}
	if o.IncludeExcluded != nil {
		opts.IncludeExcluded = *o.IncludeExcluded
	}
	return opts
}

// Classify maps engine and snapshot errors to StandardErrors. source names
// the snapshot backend for metadata.
func Classify(err error, source string) *apperrors.StandardError {
	var stdErr *apperrors.StandardError
	switch {
	case errors.As(err, &stdErr):
		return stdErr
	case errors.Is(err, models.ErrInvalidInput):
		return apperrors.NewMatchingValidationError(err)
	case errors.Is(err, snapshot.ErrSnapshotTimeout), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewSnapshotTimeoutError(source, err)
	case errors.Is(err, snapshot.ErrSnapshotLoadFailed):
		return apperrors.NewSnapshotLoadFailedError(source, err)
	default:
		return apperrors.NewMatchingFailedError(err)
	}
}

// Loader resolves the candidate professionals for a job: inline when the job
// carries them, otherwise from the configured snapshot source.
type Loader struct {
	source snapshot.Source
	name   string
	limit  int
}

// NewLoader returns a loader over source. A nil source only accepts jobs with
// inline professionals.
func NewLoader(source snapshot.Source, name string, limit int) *Loader {
	return &Loader{source: source, name: name, limit: limit}
}

func (l *Loader) SourceName() string {
	if l == nil || l.source == nil {
		return SourceInline
	}
	return l.name
}

// Load returns the candidates and where they came from.
func (l *Loader) Load(ctx context.Context, req models.ServiceRequest, inline []models.Professional, radiusKm float64) ([]models.Professional, string, error) {
	if inline != nil {
		return inline, SourceInline, nil
	}
	if l == nil || l.source == nil {
		return nil, SourceInline, &models.ValidationError{Field: "professionals", Reason: "required when no snapshot source is configured"}
	}

	q := snapshot.Query{
		Category: strings.ToLower(strings.TrimSpace(req.Category)),
		Center:   models.LocationOrDefault(req.Location),
		RadiusKm: radiusKm,
		Limit:    l.limit,
	}
	pros, err := l.source.Load(ctx, q)
	metrics.RecordSnapshotLoad(l.name, err)
	if err != nil {
		return nil, l.name, err
	}
	return pros, l.name, nil
}

// RecordResult feeds one ranking outcome into the prometheus vectors.
func RecordResult(result *ranker.Result, bidCount int) {
	mode := result.Diagnostics.Mode
	counts := make(map[string]int)
	for _, ex := range result.Diagnostics.Exclusions {
		counts[ex.Filter]++
	}
	if dropped := result.Diagnostics.TotalFound - len(result.Ranked); dropped > 0 {
		counts[ranker.FilterLimit] += dropped
	}
	for filter, n := range counts {
		metrics.RecordFiltered(mode, filter, n)
	}
	if result.Emergency.Detected {
		metrics.RecordEmergency(mode, result.Emergency.Source)
	}
	metrics.RecordBids(mode, bidCount)
}

// DefaultsFrom turns the matching config section into ranker defaults.
// Zero values fall through to the ranker's own defaults.
func DefaultsFrom(m config.MatchingConfig) ranker.Options {
	return ranker.Options{
		MaxRadiusKm:     m.MaxRadiusKm,
		Limit:           m.ResultLimit,
		IncludeExcluded: m.IncludeExcluded,
		TravelFeePerKm:  m.TravelFeePerKm,
	}
}
