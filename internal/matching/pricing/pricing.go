// internal/matching/pricing/pricing.go
package pricing

import (
	"fmt"
	"math"

	"marketplace-workers/internal/models"
)

// DefaultTravelFeePerKm is charged on top of the quote for every kilometre
// between the professional and the job.
const DefaultTravelFeePerKm = 3.0

// Preset is a named multiplier table. Full matching multiplies by complexity,
// bidding by text-derived severity.
type Preset struct {
	Name                string
	Accessibility       map[models.Accessibility]float64
	Complexity          map[models.Complexity]float64
	Severity            map[models.Severity]float64
	EmergencyMultiplier float64
	UseSeverity         bool
}

const (
	PresetMatching = "matching"
	PresetBidding  = "bidding"
)

// MatchingPreset prices full matching results. Each call returns fresh tables.
func MatchingPreset() Preset {
	return Preset{
		Name: PresetMatching,
		Accessibility: map[models.Accessibility]float64{
			models.AccessibilityEasy:   1.0,
			models.AccessibilityMedium: 1.2,
			models.AccessibilityHard:   1.5,
		},
		Complexity: map[models.Complexity]float64{
			models.ComplexityStandard: 1.0,
			models.ComplexityComplex:  1.2,
			models.ComplexityCritical: 2.0,
		},
		EmergencyMultiplier: 1.3,
	}
}

// BiddingPreset prices category bids.
func BiddingPreset() Preset {
	return Preset{
		Name: PresetBidding,
		Accessibility: map[models.Accessibility]float64{
			models.AccessibilityEasy:   1.0,
			models.AccessibilityMedium: 1.15,
			models.AccessibilityHard:   1.4,
		},
		Severity: map[models.Severity]float64{
			models.SeverityLow:    0.9,
			models.SeverityMedium: 1.0,
			models.SeverityHigh:   1.2,
		},
		EmergencyMultiplier: 1.25,
		UseSeverity:         true,
	}
}

// PresetByName resolves "matching" or "bidding".
func PresetByName(name string) (Preset, bool) {
	switch name {
	case PresetMatching:
		return MatchingPreset(), true
	case PresetBidding:
		return BiddingPreset(), true
	default:
		return Preset{}, false
	}
}

func (p Preset) accessibility(a models.Accessibility) float64 {
	if m, ok := p.Accessibility[a]; ok {
		return m
	}
	return 1.0
}

func (p Preset) difficulty(c models.Complexity, s models.Severity) float64 {
	if p.UseSeverity {
		if m, ok := p.Severity[s]; ok {
			return m
		}
		return 1.0
	}
	if m, ok := p.Complexity[c]; ok {
		return m
	}
	return 1.0
}

// Input is everything a quote depends on.
type Input struct {
	HourlyRate    float64
	Accessibility models.Accessibility
	Complexity    models.Complexity
	Severity      models.Severity
	Emergency     bool
	DistanceKm    float64
}

// Quote is a priced offer. Price is the rounded labour quote, Total adds the
// travel fee.
type Quote struct {
	Raw       float64
	Price     float64
	Breakdown models.PriceBreakdown
	Total     float64
}

type Estimator struct {
	preset         Preset
	travelFeePerKm float64
}

// NewEstimator returns an estimator for preset. A non-positive travel fee
// falls back to DefaultTravelFeePerKm.
func NewEstimator(preset Preset, travelFeePerKm float64) *Estimator {
	if travelFeePerKm <= 0 {
		travelFeePerKm = DefaultTravelFeePerKm
	}
	return &Estimator{preset: preset, travelFeePerKm: travelFeePerKm}
}

func (e *Estimator) Preset() Preset { return e.preset }

// Estimate prices one professional for one request.
func (e *Estimator) Estimate(in Input) (Quote, error) {
	if math.IsNaN(in.HourlyRate) || math.IsInf(in.HourlyRate, 0) || in.HourlyRate <= 0 {
		return Quote{}, &models.ValidationError{Field: "hourlyRate", Reason: fmt.Sprintf("hourly rate %v must be a positive finite number", in.HourlyRate)}
	}
	if math.IsNaN(in.DistanceKm) || math.IsInf(in.DistanceKm, 0) || in.DistanceKm < 0 {
		return Quote{}, &models.ValidationError{Field: "distanceKm", Reason: fmt.Sprintf("distance %v must be a non-negative finite number", in.DistanceKm)}
	}

	base := in.HourlyRate * e.preset.accessibility(in.Accessibility) * e.preset.difficulty(in.Complexity, in.Severity)
	raw := base
	if in.Emergency {
		raw *= e.preset.EmergencyMultiplier
	}

	price := RoundToTen(raw)
	baseRounded := RoundToTen(base)
	travel := math.Round(in.DistanceKm * e.travelFeePerKm)

	return Quote{
		Raw:   raw,
		Price: price,
		Breakdown: models.PriceBreakdown{
			Base:    baseRounded,
			Travel:  travel,
			Urgency: price - baseRounded,
		},
		Total: price + travel,
	}, nil
}

// RoundToTen rounds to the nearest multiple of ten, half away from zero, and
// never returns less than ten.
func RoundToTen(v float64) float64 {
	r := math.Round(v/10) * 10
	if r < 10 {
		return 10
	}
	return r
}
