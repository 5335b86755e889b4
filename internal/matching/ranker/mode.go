// internal/matching/ranker/mode.go
package ranker

import (
	"fmt"

	"marketplace-workers/internal/matching/capability"
	"marketplace-workers/internal/matching/pricing"
	"marketplace-workers/internal/models"
)

// Mode selects one of the product-tuned scoring profiles.
type Mode string

const (
	// ModeFullMatching ranks with synonym expansion and semantic scoring.
	ModeFullMatching Mode = "full_matching"
	// ModeCategoryBidding ranks on the coarse category table and re-sorts bids.
	ModeCategoryBidding Mode = "category_bidding"
)

func (m Mode) String() string { return string(m) }

// Weights are the sub-score weights of the composite score. They sum to 1.
type Weights struct {
	Proximity  float64 `json:"proximity"`
	Difficulty float64 `json:"difficulty"`
	Reputation float64 `json:"reputation"`
	Semantic   float64 `json:"semantic"`
}

// Profile is the full parameter set behind a Mode.
type Profile struct {
	Mode     Mode
	Weights  Weights
	Strategy capability.Strategy
	Pricing  pricing.Preset
	// ResortBids reports whether the bid list is re-sorted after assembly.
	ResortBids bool
}

// ProfileFor returns the preset profile for mode.
func ProfileFor(mode Mode) (Profile, error) {
	switch mode {
	case ModeFullMatching, "":
		return Profile{
			Mode: ModeFullMatching,
			Weights: Weights{
				Proximity:  0.30,
				Difficulty: 0.20,
				Reputation: 0.20,
				Semantic:   0.30,
			},
			Strategy: capability.StrategySynonym,
			Pricing:  pricing.MatchingPreset(),
		}, nil
	case ModeCategoryBidding:
		return Profile{
			Mode: ModeCategoryBidding,
			Weights: Weights{
				Proximity:  0.40,
				Difficulty: 0.20,
				Reputation: 0.40,
				Semantic:   0,
			},
			Strategy:   capability.StrategyCategory,
			Pricing:    pricing.BiddingPreset(),
			ResortBids: true,
		}, nil
	default:
		return Profile{}, &models.ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
}
