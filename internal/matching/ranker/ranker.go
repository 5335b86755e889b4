// internal/matching/ranker/ranker.go
package ranker

import (
	"fmt"
	"sort"

	"marketplace-workers/internal/matching/capability"
	"marketplace-workers/internal/matching/geo"
	"marketplace-workers/internal/matching/pricing"
	"marketplace-workers/internal/matching/textclass"
	"marketplace-workers/internal/models"
)

const DefaultLimit = 10

// Filter names reported in diagnostics.
const (
	FilterRadius     = "radius"
	FilterCapability = "capability"
	FilterDifficulty = "difficulty"
	FilterLimit      = "limit"
)

type Options struct {
	Mode            Mode
	MaxRadiusKm     float64
	Limit           int
	IncludeExcluded bool
	TravelFeePerKm  float64
}

func DefaultOptions() Options {
	return Options{
		Mode:           ModeFullMatching,
		MaxRadiusKm:    geo.DefaultMaxRadiusKm,
		Limit:          DefaultLimit,
		TravelFeePerKm: pricing.DefaultTravelFeePerKm,
	}
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeFullMatching
	}
	if o.MaxRadiusKm <= 0 {
		o.MaxRadiusKm = geo.DefaultMaxRadiusKm
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.TravelFeePerKm <= 0 {
		o.TravelFeePerKm = pricing.DefaultTravelFeePerKm
	}
	return o
}

// Result is the ranked, truncated candidate list plus what happened on the
// way. An empty Ranked slice with a nil error is a valid no-match.
type Result struct {
	Ranked      []models.RankedProfessional
	Diagnostics models.Diagnostics
	Emergency   textclass.Emergency
	Profile     Profile
}

// Ranker scores candidates for one mode. It holds no per-call state and is
// safe for concurrent use.
type Ranker struct {
	profile   Profile
	opts      Options
	estimator *pricing.Estimator
}

func New(opts Options) (*Ranker, error) {
	opts = opts.withDefaults()
	profile, err := ProfileFor(opts.Mode)
	if err != nil {
		return nil, err
	}
	return &Ranker{
		profile:   profile,
		opts:      opts,
		estimator: pricing.NewEstimator(profile.Pricing, opts.TravelFeePerKm),
	}, nil
}

// Rank is a convenience wrapper around New(opts).Rank.
func Rank(req models.ServiceRequest, candidates []models.Professional, opts Options) (*Result, error) {
	r, err := New(opts)
	if err != nil {
		return nil, err
	}
	return r.Rank(req, candidates)
}

func (r *Ranker) Profile() Profile { return r.profile }
func (r *Ranker) Options() Options { return r.opts }

// Rank runs the filter, score, sort and truncate pipeline. Malformed input
// fails with an error wrapping models.ErrInvalidInput before any scoring.
func (r *Ranker) Rank(rawReq models.ServiceRequest, candidates []models.Professional) (*Result, error) {
	req, err := rawReq.Normalize()
	if err != nil {
		return nil, err
	}
	if err := models.ValidateProfessionals(candidates); err != nil {
		return nil, err
	}

	text := req.Text()
	emergency := textclass.ResolveEmergency(req.Emergency, text)
	severity := textclass.DetectSeverity(text)

	diag := models.Diagnostics{
		Mode:                r.profile.Mode.String(),
		IsEmergencyDetected: emergency.Detected,
		EmergencySource:     emergency.Source,
		Severity:            severity,
	}
	exclude := func(p models.Professional, filter, reason string) {
		diag.Exclusions = append(diag.Exclusions, models.Exclusion{ProfessionalID: p.ID, Filter: filter, Reason: reason})
	}

	origin := req.Point()
	located := make([]geo.Located, len(candidates))
	for i, p := range candidates {
		located[i] = geo.Located{Index: i, DistanceKm: geo.Distance(origin, p.Point())}
	}

	inRadius := geo.FilterByRadius(located, r.opts.MaxRadiusKm)
	diag.FiltersApplied = append(diag.FiltersApplied, fmt.Sprintf("%s<=%gkm", FilterRadius, r.opts.MaxRadiusKm))
	if len(inRadius) < len(located) {
		kept := make(map[int]struct{}, len(inRadius))
		for _, l := range inRadius {
			kept[l.Index] = struct{}{}
		}
		for _, l := range located {
			if _, ok := kept[l.Index]; !ok {
				exclude(candidates[l.Index], FilterRadius, fmt.Sprintf("%.1f km is beyond %g km", l.DistanceKm, r.opts.MaxRadiusKm))
			}
		}
	}

	tags := capability.ResolveTags(req, r.profile.Strategy)
	diag.FiltersApplied = append(diag.FiltersApplied, fmt.Sprintf("%s:%s", FilterCapability, r.profile.Strategy))
	diag.FiltersApplied = append(diag.FiltersApplied, fmt.Sprintf("%s:%s", FilterDifficulty, req.Accessibility))

	ranked := make([]models.RankedProfessional, 0, len(inRadius))
	for _, l := range inRadius {
		p := candidates[l.Index].Normalize()

		if !capability.IsEligible(p, tags) {
			exclude(p, FilterCapability, "no capability tag matches the request")
			continue
		}

		diff := capability.MatchDifficulty(req.Accessibility, p.Tolerance())
		if diff.Excluded {
			exclude(p, FilterDifficulty, diff.Caveat)
			if !r.opts.IncludeExcluded {
				continue
			}
		}

		rp, err := r.score(req, p, l.DistanceKm, diff, emergency.Detected, severity)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, rp)
	}

	sortRanked(ranked, emergency.Detected)

	offerable, flagged := partitionExcluded(ranked)
	diag.TotalFound = len(offerable)
	if len(offerable) > r.opts.Limit {
		offerable = offerable[:r.opts.Limit]
	}
	ranked = append(offerable, flagged...)
	diag.FiltersApplied = append(diag.FiltersApplied, fmt.Sprintf("%s:%d", FilterLimit, r.opts.Limit))

	return &Result{
		Ranked:      ranked,
		Diagnostics: diag,
		Emergency:   emergency,
		Profile:     r.profile,
	}, nil
}

func (r *Ranker) score(req models.ServiceRequest, p models.Professional, distanceKm float64, diff capability.DifficultyResult, emergency bool, severity models.Severity) (models.RankedProfessional, error) {
	breakdown := models.ScoreBreakdown{
		Proximity:       geo.DistanceScore(distanceKm, r.opts.MaxRadiusKm),
		DifficultyMatch: diff.Score,
		Reputation:      Reputation(p),
		SemanticMatch:   capability.SemanticScore(req, p),
		EmergencyBonus:  EmergencyBonus(p, emergency),
	}

	quote, err := r.estimator.Estimate(pricing.Input{
		HourlyRate:    p.HourlyRate,
		Accessibility: req.Accessibility,
		Complexity:    req.Complexity,
		Severity:      severity,
		Emergency:     emergency,
		DistanceKm:    distanceKm,
	})
	if err != nil {
		return models.RankedProfessional{}, fmt.Errorf("pricing %s: %w", p.ID, err)
	}

	label := geo.FormatDistance(distanceKm)
	rp := models.RankedProfessional{
		Professional:   p,
		DistanceKm:     distanceKm,
		DistanceLabel:  label,
		Score:          composite(r.profile.Weights, breakdown),
		Breakdown:      breakdown,
		MatchReasons:   matchReasons(req, p, distanceKm, label, emergency),
		EstimatedPrice: quote.Price,
		Price:          quote.Breakdown,
		TotalPrice:     quote.Total,
		Excluded:       diff.Excluded,
	}
	if diff.Caveat != "" {
		rp.Caveats = append(rp.Caveats, diff.Caveat)
	}
	return rp, nil
}

// partitionExcluded splits flagged professionals from offerable ones, keeping
// the sorted order of both. Flagged entries never count toward the limit.
func partitionExcluded(ranked []models.RankedProfessional) (offerable, flagged []models.RankedProfessional) {
	offerable = make([]models.RankedProfessional, 0, len(ranked))
	for _, rp := range ranked {
		if rp.Excluded {
			flagged = append(flagged, rp)
			continue
		}
		offerable = append(offerable, rp)
	}
	return offerable, flagged
}

// sortRanked orders by score, nearest first on ties, then by id. During an
// emergency, emergency-mode professionals are partitioned ahead of the rest.
func sortRanked(ranked []models.RankedProfessional, emergency bool) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if emergency && a.Professional.EmergencyMode != b.Professional.EmergencyMode {
			return a.Professional.EmergencyMode
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		return a.Professional.ID < b.Professional.ID
	})
}
