// internal/matching/bids/factory_test.go
package bids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-workers/internal/models"
)

func rankedPro(id string, score, km float64, emergencyMode bool) models.RankedProfessional {
	return models.RankedProfessional{
		Professional: models.Professional{
			ID: id, Name: "Pro " + id, Rating: 4.5, ReviewCount: 20,
			ResponseTimeMinutes: 25, EmergencyMode: emergencyMode, HourlyRate: 100,
		},
		DistanceKm:     km,
		DistanceLabel:  "label",
		Score:          score,
		MatchReasons:   []string{"reason"},
		EstimatedPrice: 120,
		Price:          models.PriceBreakdown{Base: 100, Travel: 6, Urgency: 20},
		TotalPrice:     126,
	}
}

func TestBuild_FieldsAndIDs(t *testing.T) {
	f := NewFactory(FixedGenerator{Prefix: "call"})
	ranked := []models.RankedProfessional{
		rankedPro("a", 90, 2, false),
		rankedPro("b", 80, 20, true),
	}

	bids := f.Build(ranked, false, false)
	require.Len(t, bids, 2)

	first := bids[0]
	assert.Equal(t, "call-1", first.ID)
	assert.Equal(t, "a", first.ProfessionalID)
	assert.Equal(t, "Pro a", first.ProviderName)
	assert.Equal(t, 126.0, first.TotalPrice)
	assert.Equal(t, models.PriceBreakdown{Base: 100, Travel: 6, Urgency: 20}, first.Price)
	assert.Equal(t, 5, first.ETAMinutes)
	assert.Equal(t, models.AvailableNow, first.Availability)
	assert.Equal(t, []string{"reason"}, first.MatchReasons)

	second := bids[1]
	assert.Equal(t, "call-2", second.ID)
	assert.Equal(t, 40, second.ETAMinutes)
	assert.Equal(t, models.AvailableLater, second.Availability)
	assert.True(t, second.EmergencyReady)
}

func TestBuild_SkipsExcluded(t *testing.T) {
	excluded := rankedPro("x", 99, 1, true)
	excluded.Excluded = true

	bids := NewFactory(FixedGenerator{Prefix: "p"}).Build([]models.RankedProfessional{excluded, rankedPro("a", 50, 3, false)}, true, true)

	require.Len(t, bids, 1)
	assert.Equal(t, "a", bids[0].ProfessionalID)
	assert.Equal(t, "p-1", bids[0].ID)
}

func TestBuild_KeepsRankedOrderWithoutResort(t *testing.T) {
	ranked := []models.RankedProfessional{
		rankedPro("low", 10, 1, false),
		rankedPro("high", 90, 1, false),
	}

	bids := NewFactory(FixedGenerator{Prefix: "p"}).Build(ranked, false, false)
	assert.Equal(t, "low", bids[0].ProfessionalID)
}

func TestBuild_ResortPartitionsEmergency(t *testing.T) {
	ranked := []models.RankedProfessional{
		rankedPro("a", 95, 3, false),
		rankedPro("b", 60, 8, true),
		rankedPro("c", 70, 4, true),
		rankedPro("d", 95, 1, false),
	}

	bids := NewFactory(FixedGenerator{Prefix: "p"}).Build(ranked, true, true)

	var ids []string
	for _, b := range bids {
		ids = append(ids, b.ProfessionalID)
	}
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids)

	bids = NewFactory(FixedGenerator{Prefix: "p"}).Build(ranked, false, true)
	ids = ids[:0]
	for _, b := range bids {
		ids = append(ids, b.ProfessionalID)
	}
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids)
}

func TestBuild_UniqueIDs(t *testing.T) {
	var ranked []models.RankedProfessional
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		ranked = append(ranked, rankedPro(id, 50, 1, false))
	}

	bids := NewFactory(nil).Build(ranked, false, false)
	seen := map[string]bool{}
	for _, b := range bids {
		assert.True(t, strings.HasPrefix(b.ID, "bid-"))
		assert.False(t, seen[b.ID])
		seen[b.ID] = true
	}
}

func TestBuild_DeterministicWithFixedGenerator(t *testing.T) {
	ranked := []models.RankedProfessional{rankedPro("a", 50, 1, true), rankedPro("b", 40, 2, false)}
	f := NewFactory(FixedGenerator{Prefix: "fixed"})

	assert.Equal(t, f.Build(ranked, true, true), f.Build(ranked, true, true))
}

func TestBadges(t *testing.T) {
	tests := []struct {
		name string
		pro  models.Professional
		want []string
	}{
		{"none", models.Professional{Rating: 4.0, ResponseTimeMinutes: 45, YearsExperience: 2}, []string{}},
		{
			"all",
			models.Professional{EmergencyMode: true, Rating: 4.8, ResponseTimeMinutes: 10, YearsExperience: 10},
			[]string{models.BadgeEmergencyReady, models.BadgeTopRated, models.BadgeFastResponse, models.BadgeVeteran},
		},
		{"just below thresholds", models.Professional{Rating: 4.79, ResponseTimeMinutes: 11, YearsExperience: 9}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Badges(tt.pro))
		})
	}
}
