// internal/matching/bids/factory.go
package bids

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"marketplace-workers/internal/matching/geo"
	"marketplace-workers/internal/models"
)

const (
	topRatedMin      = 4.8
	fastResponseMax  = 10
	veteranYearsMin  = 10
	availableNowMins = 30
)

// IDGenerator yields the per-call prefix bid ids are derived from.
type IDGenerator interface {
	NewPrefix() string
}

// UUIDGenerator prefixes bid ids with a random UUID.
type UUIDGenerator struct{}

func (UUIDGenerator) NewPrefix() string {
	return "bid-" + uuid.NewString()
}

// FixedGenerator always returns Prefix. Used for deterministic output.
type FixedGenerator struct {
	Prefix string
}

func (g FixedGenerator) NewPrefix() string {
	return g.Prefix
}

type Factory struct {
	ids IDGenerator
}

// NewFactory returns a factory using ids, or UUIDGenerator when ids is nil.
func NewFactory(ids IDGenerator) *Factory {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Factory{ids: ids}
}

// Build turns ranked professionals into bids. Excluded professionals never
// get a bid. With resort set the bids are re-ordered the same way the ranker
// orders candidates; otherwise the ranked order is kept.
func (f *Factory) Build(ranked []models.RankedProfessional, emergency, resort bool) []models.Bid {
	prefix := f.ids.NewPrefix()

	out := make([]models.Bid, 0, len(ranked))
	for _, rp := range ranked {
		if rp.Excluded {
			continue
		}
		out = append(out, buildBid(fmt.Sprintf("%s-%d", prefix, len(out)+1), rp))
	}

	if resort {
		SortBids(out, emergency)
	}
	return out
}

func buildBid(id string, rp models.RankedProfessional) models.Bid {
	p := rp.Professional
	eta := geo.ETAMinutes(rp.DistanceKm)

	availability := models.AvailableLater
	if eta <= availableNowMins {
		availability = models.AvailableNow
	}

	reasons := make([]string, len(rp.MatchReasons))
	copy(reasons, rp.MatchReasons)

	return models.Bid{
		ID:             id,
		ProfessionalID: p.ID,
		ProviderName:   p.Name,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Price:          rp.Price,
		TotalPrice:     rp.TotalPrice,
		DistanceKm:     rp.DistanceKm,
		DistanceLabel:  rp.DistanceLabel,
		ETAMinutes:     eta,
		Availability:   availability,
		Score:          rp.Score,
		Badges:         Badges(p),
		MatchReasons:   reasons,
		EmergencyReady: p.EmergencyMode,
	}
}

// Badges lists the display badges a professional qualifies for.
func Badges(p models.Professional) []string {
	badges := []string{}
	if p.EmergencyMode {
		badges = append(badges, models.BadgeEmergencyReady)
	}
	if p.Rating >= topRatedMin {
		badges = append(badges, models.BadgeTopRated)
	}
	if p.ResponseTimeMinutes <= fastResponseMax {
		badges = append(badges, models.BadgeFastResponse)
	}
	if p.YearsExperience >= veteranYearsMin {
		badges = append(badges, models.BadgeVeteran)
	}
	return badges
}

// SortBids puts emergency-ready bids first during an emergency, then orders
// by score, distance and professional id.
func SortBids(bids []models.Bid, emergency bool) {
	sort.SliceStable(bids, func(i, j int) bool {
		a, b := bids[i], bids[j]
		if emergency && a.EmergencyReady != b.EmergencyReady {
			return a.EmergencyReady
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		return a.ProfessionalID < b.ProfessionalID
	})
}
