// internal/matching/capability/matcher_test.go
package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace-workers/internal/models"
)

// ==========================
// Tag resolution
// ==========================

func TestResolveTags_Synonym(t *testing.T) {
	tags := ResolveTags(models.ServiceRequest{Category: "Plumbing", IssueTag: "leak"}, StrategySynonym)

	assert.True(t, tags.Contains("plumbing"))
	assert.True(t, tags.Contains("leak"))
	assert.True(t, tags.Contains("water damage"))
	assert.True(t, tags.Contains("DRIPPING"))
	assert.False(t, tags.Contains("electrical"))
}

func TestResolveTags_Category(t *testing.T) {
	tags := ResolveTags(models.ServiceRequest{Category: "plumbing", IssueTag: "leak"}, StrategyCategory)

	assert.Equal(t, []string{"plumber", "plumbing"}, tags.Sorted())
	assert.False(t, tags.Contains("leak"))
}

func TestResolveTags_UnmappedCategory(t *testing.T) {
	for _, s := range []Strategy{StrategySynonym, StrategyCategory} {
		tags := ResolveTags(models.ServiceRequest{Category: "gardening", IssueTag: "leak"}, s)
		assert.Empty(t, tags, string(s))
	}
}

func TestIsEligible(t *testing.T) {
	tags := ResolveTags(models.ServiceRequest{Category: "plumbing", IssueTag: "leak"}, StrategySynonym)

	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"direct issue tag", []string{"leak"}, true},
		{"category tag", []string{"Plumbing"}, true},
		{"synonym tag", []string{"water damage"}, true},
		{"unrelated", []string{"electrical", "wiring"}, false},
		{"no tags", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(models.Professional{CapabilityTags: tt.tags}, tags))
		})
	}
}

// ==========================
// Difficulty
// ==========================

func TestMatchDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		required  models.Accessibility
		tolerance models.Accessibility
		score     float64
		excluded  bool
		caveat    bool
	}{
		{"equal easy", models.AccessibilityEasy, models.AccessibilityEasy, 100, false, false},
		{"equal hard", models.AccessibilityHard, models.AccessibilityHard, 100, false, false},
		{"over qualified", models.AccessibilityEasy, models.AccessibilityHard, 80, false, false},
		{"over qualified by one", models.AccessibilityMedium, models.AccessibilityHard, 80, false, false},
		{"under qualified", models.AccessibilityMedium, models.AccessibilityEasy, 40, false, true},
		{"hard needs more than medium", models.AccessibilityHard, models.AccessibilityMedium, 40, false, true},
		{"hard vs easy excluded", models.AccessibilityHard, models.AccessibilityEasy, 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchDifficulty(tt.required, tt.tolerance)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.excluded, got.Excluded)
			assert.Equal(t, tt.caveat, got.Caveat != "")
		})
	}
}

// ==========================
// Semantic score
// ==========================

func TestSemanticScore(t *testing.T) {
	tests := []struct {
		name string
		req  models.ServiceRequest
		pro  models.Professional
		want float64
	}{
		{
			name: "direct tag only",
			req:  models.ServiceRequest{IssueTag: "leak", Description: "fix it"},
			pro:  models.Professional{CapabilityTags: []string{"leak"}},
			want: 40,
		},
		{
			name: "direct tag plus two synonyms",
			req:  models.ServiceRequest{IssueTag: "leak", Description: "water damage from a burst pipe"},
			pro:  models.Professional{CapabilityTags: []string{"LEAK"}},
			want: 60,
		},
		{
			name: "token overlap capped at twenty",
			req:  models.ServiceRequest{Description: "kitchen bathroom boiler faucet shower"},
			pro: models.Professional{
				CapabilityTags:  []string{"kitchen", "bathroom"},
				Specializations: []string{"boiler service", "faucet install", "shower repair"},
			},
			want: 20,
		},
		{
			name: "specialization overlap",
			req:  models.ServiceRequest{Description: "old boiler rattling"},
			pro:  models.Professional{Specializations: []string{"Boiler service"}},
			want: 5,
		},
		{
			name: "everything at once is capped",
			req: models.ServiceRequest{
				IssueTag:    "leak",
				Description: "leaking dripping burst pipe water damage drip pipe kitchen sink",
			},
			pro: models.Professional{
				CapabilityTags:  []string{"leak", "pipe", "kitchen", "sink", "water", "damage"},
				Specializations: []string{"burst"},
			},
			want: 100,
		},
		{
			name: "nothing in common",
			req:  models.ServiceRequest{IssueTag: "leak", Description: "broken window"},
			pro:  models.Professional{CapabilityTags: []string{"glazier"}},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SemanticScore(tt.req, tt.pro)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}
