// internal/workers/matching/estimate-price/handler.go
package estimateprice

import (
	"context"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"marketplace-workers/internal/common/camunda"
	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/matching/geo"
	"marketplace-workers/internal/matching/pricing"
	"marketplace-workers/internal/matching/textclass"
	"marketplace-workers/internal/workers/matching/matchjob"
)

const (
	TaskType = "estimate-price"
)

var (
	ErrUnknownPreset = errors.New("UNKNOWN_PRESET")
)

type Handler struct {
	config       *Config
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: apperrors.NewErrorHandler(scoped),
		logger:       scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	done := metrics.JobStarted(TaskType)
	defer done()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := matchjob.Decode(matchjob.EstimateSchema, job.Variables, &input); err != nil {
		h.failJob(client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.logger.Info("price estimated", map[string]interface{}{
		"jobKey":       job.Key,
		"professional": input.Professional.ID,
		"price":        output.Price,
		"totalPrice":   output.TotalPrice,
		"preset":       output.Preset,
	})
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	req, err := input.Request.Normalize()
	if err != nil {
		return nil, apperrors.NewMatchingValidationError(err)
	}
	if err := input.Professional.Validate(); err != nil {
		return nil, apperrors.NewMatchingValidationError(err)
	}

	name := input.Preset
	if name == "" {
		name = h.config.DefaultPreset
	}
	preset, ok := pricing.PresetByName(name)
	if !ok {
		return nil, apperrors.NewPricingFailedError(fmt.Errorf("%w: %q", ErrUnknownPreset, name))
	}

	fee := h.config.TravelFeePerKm
	if input.TravelFeePerKm != nil {
		fee = *input.TravelFeePerKm
	}

	text := req.Text()
	emergency := textclass.ResolveEmergency(req.Emergency, text)
	severity := textclass.DetectSeverity(text)
	distance := geo.Distance(req.Point(), input.Professional.Point())

	quote, err := pricing.NewEstimator(preset, fee).Estimate(pricing.Input{
		HourlyRate:    input.Professional.HourlyRate,
		Accessibility: req.Accessibility,
		Complexity:    req.Complexity,
		Severity:      severity,
		Emergency:     emergency.Detected,
		DistanceKm:    distance,
	})
	if err != nil {
		return nil, apperrors.NewPricingFailedError(err)
	}

	return &Output{
		Price:         quote.Price,
		Breakdown:     quote.Breakdown,
		TotalPrice:    quote.Total,
		DistanceKm:    distance,
		DistanceLabel: geo.FormatDistance(distance),
		IsEmergency:   emergency.Detected,
		Severity:      severity,
		Preset:        preset.Name,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	if err := camunda.CompleteJob(context.Background(), client, job.Key, output, camunda.DefaultRetryConfig); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	metrics.JobCompleted(TaskType)
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	stdErr := apperrors.Normalize(err)
	metrics.JobFailed(TaskType, string(stdErr.Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
