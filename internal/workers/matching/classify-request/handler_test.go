package classifyrequest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"marketplace-workers/internal/common/camunda/camundatest"
	"marketplace-workers/internal/common/config"
	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/matching/textclass"
	"marketplace-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func boolPtr(b bool) *bool { return &b }

// ==========================
// Classification Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name            string
		request         models.ServiceRequest
		wantEmergency   bool
		wantSource      string
		wantKeyword     string
		wantSeverity    models.Severity
		wantSynonyms    []string
		wantTagIncludes []string
	}{
		{
			name: "burst pipe from text",
			request: models.ServiceRequest{
				Category:    "Plumbing",
				Description: "burst pipe in the kitchen, water damage everywhere",
				IssueTag:    "leak",
			},
			wantEmergency:   true,
			wantSource:      textclass.SourceText,
			wantKeyword:     "burst",
			wantSeverity:    models.SeverityHigh,
			wantSynonyms:    []string{"burst pipe", "water damage"},
			wantTagIncludes: []string{"plumbing", "leak", "burst pipe"},
		},
		{
			name: "explicit flag overrides keywords",
			request: models.ServiceRequest{
				Category:    "electrical",
				Description: "urgent, the outlet is broken",
				Emergency:   boolPtr(false),
			},
			wantEmergency:   false,
			wantSource:      textclass.SourceExplicit,
			wantSeverity:    models.SeverityMedium,
			wantSynonyms:    []string{},
			wantTagIncludes: []string{"electrical", "outlet"},
		},
		{
			name: "hebrew flooding",
			request: models.ServiceRequest{
				Category:    "plumbing",
				Description: "יש הצפה בבית",
			},
			wantEmergency: true,
			wantSource:    textclass.SourceText,
			wantKeyword:   "הצפה",
			wantSeverity:  models.SeverityHigh,
			wantSynonyms:  []string{},
		},
		{
			name: "unknown category, minor issue",
			request: models.ServiceRequest{
				Category:    "gardening",
				Description: "dripping tap, no rush",
			},
			wantEmergency: false,
			wantSource:    textclass.SourceNone,
			wantSeverity:  models.SeverityLow,
			wantSynonyms:  []string{},
		},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), &Input{Request: tt.request})
			require.NoError(t, err)

			assert.Equal(t, tt.wantEmergency, output.IsEmergency)
			assert.Equal(t, tt.wantSource, output.EmergencySource)
			assert.Equal(t, tt.wantKeyword, output.EmergencyKeyword)
			assert.Equal(t, tt.wantSeverity, output.Severity)
			assert.Equal(t, tt.wantSynonyms, output.IssueSynonyms)
			assert.True(t, sort.StringsAreSorted(output.CapabilityTags))
			for _, tag := range tt.wantTagIncludes {
				assert.Contains(t, output.CapabilityTags, tag)
			}
		})
	}
}

func TestHandler_Execute_UnknownCategoryHasNoTags(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		Request: models.ServiceRequest{Category: "Gardening", IssueTag: "leak"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gardening", output.Category)
	assert.Empty(t, output.CapabilityTags)
	assert.NotNil(t, output.CapabilityTags)
}

func TestHandler_Execute_InvalidRequest(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), &Input{
		Request: models.ServiceRequest{Category: "plumbing", Accessibility: "vertical"},
	})

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeMatchingValidationFailed, stdErr.Code)
}

// ==========================
// Job Handling Tests
// ==========================

func TestHandler_Handle(t *testing.T) {
	client := camundatest.NewJobClient()
	createTestHandler(t).Handle(client, camundatest.NewJob(TaskType, 21, 3, map[string]interface{}{
		"request": map[string]interface{}{
			"category":    "locksmith",
			"description": "Locked out of my apartment",
		},
	}))

	require.Len(t, client.Completed(), 1)
	var output Output
	require.NoError(t, client.CompletedVariables(&output))
	assert.True(t, output.IsEmergency)
	assert.Equal(t, "locked out", output.EmergencyKeyword)
	assert.Contains(t, output.CapabilityTags, "locksmith")
}

func TestHandler_Handle_InvalidLocationThrows(t *testing.T) {
	client := camundatest.NewJobClient()
	createTestHandler(t).Handle(client, camundatest.NewJob(TaskType, 22, 3,
		`{"request": {"description": "leak", "location": {"lat": 32.1, "lng": 190}}}`))

	assert.Empty(t, client.Completed())
	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, "INPUT_INVALID", client.Thrown()[0].ErrorCode)
	assert.Contains(t, client.Thrown()[0].Variables, "request.location.lng")
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 10*time.Second, LoadConfig(config.WorkerConfig{}).Timeout)
	assert.Equal(t, 2*time.Second, LoadConfig(config.WorkerConfig{Timeout: 2000}).Timeout)
}
