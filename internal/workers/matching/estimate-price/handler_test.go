package estimateprice

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"marketplace-workers/internal/common/camunda/camundatest"
	"marketplace-workers/internal/common/config"
	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/matching/pricing"
	"marketplace-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	cfg := &Config{
		Timeout:        time.Second,
		DefaultPreset:  pricing.PresetMatching,
		TravelFeePerKm: pricing.DefaultTravelFeePerKm,
	}
	return NewHandler(cfg, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func point(lat, lng float64) *models.GeoPoint {
	return &models.GeoPoint{Lat: lat, Lng: lng}
}

func boolPtr(b bool) *bool { return &b }

func plumber(loc *models.GeoPoint) models.Professional {
	return models.Professional{
		ID:                  "pro-1",
		Name:                "Cohen & Sons",
		CapabilityTags:      []string{"plumbing"},
		DifficultyTolerance: models.AccessibilityHard,
		Rating:              4.8,
		HourlyRate:          150,
		Location:            loc,
	}
}

// ==========================
// Pricing Tests
// ==========================

func TestHandler_Execute_MatchingPreset(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		Request: models.ServiceRequest{
			Category:      "plumbing",
			Accessibility: models.AccessibilityHard,
			Complexity:    models.ComplexityCritical,
			Emergency:     boolPtr(true),
			Location:      point(32.0853, 34.7818),
		},
		Professional: plumber(point(32.0853, 34.7818)),
	})
	require.NoError(t, err)

	// 150 * 1.5 * 2.0 * 1.3 = 585
	assert.Equal(t, 590.0, output.Price)
	assert.Equal(t, 450.0, output.Breakdown.Base)
	assert.Equal(t, 140.0, output.Breakdown.Urgency)
	assert.Equal(t, 0.0, output.Breakdown.Travel)
	assert.Equal(t, 590.0, output.TotalPrice)
	assert.True(t, output.IsEmergency)
	assert.Equal(t, "0 m", output.DistanceLabel)
	assert.Equal(t, pricing.PresetMatching, output.Preset)
}

func TestHandler_Execute_BiddingPresetWithTravel(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		Request: models.ServiceRequest{
			Category:      "plumbing",
			Description:   "pipe burst in the bathroom",
			Accessibility: models.AccessibilityHard,
			Location:      point(32.0853, 34.7818),
		},
		Professional: plumber(point(32.1300, 34.7818)),
		Preset:       pricing.PresetBidding,
	})
	require.NoError(t, err)

	// 150 * 1.4 * 1.2 (high severity) * 1.25 = 315
	assert.Equal(t, 320.0, output.Price)
	assert.Equal(t, models.SeverityHigh, output.Severity)
	assert.True(t, output.IsEmergency)
	assert.Equal(t, pricing.PresetBidding, output.Preset)

	assert.InDelta(t, 4.97, output.DistanceKm, 0.05)
	assert.Equal(t, math.Round(output.DistanceKm*pricing.DefaultTravelFeePerKm), output.Breakdown.Travel)
	assert.Equal(t, output.Price+output.Breakdown.Travel, output.TotalPrice)
}

func TestHandler_Execute_TravelFeeOverride(t *testing.T) {
	fee := 10.0
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		Request:        models.ServiceRequest{Category: "plumbing", Location: point(32.0853, 34.7818)},
		Professional:   plumber(point(32.1300, 34.7818)),
		TravelFeePerKm: &fee,
	})
	require.NoError(t, err)

	assert.Equal(t, math.Round(output.DistanceKm*fee), output.Breakdown.Travel)
	assert.False(t, output.IsEmergency)
	assert.Equal(t, models.SeverityLow, output.Severity)
	// easy, standard, no emergency: the hourly rate rounded
	assert.Equal(t, 150.0, output.Price)
}

func TestHandler_Execute_MissingLocationsUseFallback(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		Request:      models.ServiceRequest{Category: "plumbing"},
		Professional: plumber(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, output.DistanceKm)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "unknown preset",
			input:    &Input{Request: models.ServiceRequest{Category: "plumbing"}, Professional: plumber(nil), Preset: "surge"},
			wantCode: apperrors.ErrCodePricingFailed,
		},
		{
			name: "non-positive hourly rate",
			input: &Input{
				Request:      models.ServiceRequest{Category: "plumbing"},
				Professional: models.Professional{ID: "pro-2", HourlyRate: 0},
			},
			wantCode: apperrors.ErrCodeMatchingValidationFailed,
		},
		{
			name: "bad complexity",
			input: &Input{
				Request:      models.ServiceRequest{Category: "plumbing", Complexity: "insane"},
				Professional: plumber(nil),
			},
			wantCode: apperrors.ErrCodeMatchingValidationFailed,
		},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(context.Background(), tt.input)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

// ==========================
// Job Handling Tests
// ==========================

func TestHandler_Handle(t *testing.T) {
	client := camundatest.NewJobClient()
	createTestHandler(t).Handle(client, camundatest.NewJob(TaskType, 31, 3, `{
		"request": {"category": "plumbing", "accessibility": "HARD", "complexity": "critical", "emergency": true},
		"professional": {"id": "pro-1", "hourlyRate": 150, "rating": 4.8},
		"preset": "matching"
	}`))

	require.Len(t, client.Completed(), 1)
	var output Output
	require.NoError(t, client.CompletedVariables(&output))
	assert.Equal(t, 590.0, output.Price)
	assert.Equal(t, 590.0, output.TotalPrice)
}

func TestHandler_Handle_MissingProfessionalThrows(t *testing.T) {
	client := camundatest.NewJobClient()
	createTestHandler(t).Handle(client, camundatest.NewJob(TaskType, 32, 3, `{"request": {"category": "plumbing"}}`))

	assert.Empty(t, client.Completed())
	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, "INPUT_INVALID", client.Thrown()[0].ErrorCode)
}

func TestHandler_Handle_UnknownPresetThrows(t *testing.T) {
	client := camundatest.NewJobClient()
	createTestHandler(t).Handle(client, camundatest.NewJob(TaskType, 33, 3,
		`{"request": {"category": "plumbing"}, "professional": {"id": "p", "hourlyRate": 100}, "preset": "surge"}`))

	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, "INPUT_INVALID", client.Thrown()[0].ErrorCode)
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.WorkerConfig{Timeout: 1500}, config.MatchingConfig{})
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, pricing.DefaultTravelFeePerKm, cfg.TravelFeePerKm)
	assert.Equal(t, pricing.PresetMatching, cfg.DefaultPreset)

	cfg = LoadConfig(config.WorkerConfig{}, config.MatchingConfig{TravelFeePerKm: 4.5})
	assert.Equal(t, 4.5, cfg.TravelFeePerKm)
}
