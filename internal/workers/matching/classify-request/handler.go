// internal/workers/matching/classify-request/handler.go
package classifyrequest

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"marketplace-workers/internal/common/camunda"
	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/matching/capability"
	"marketplace-workers/internal/matching/textclass"
	"marketplace-workers/internal/workers/matching/matchjob"
)

const (
	TaskType = "classify-request"
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
	if err := matchjob.Decode(matchjob.ClassifySchema, job.Variables, &input); err != nil {
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

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	req, err := input.Request.Normalize()
	if err != nil {
		return nil, matchjob.Classify(err, matchjob.SourceInline)
	}

	text := req.Text()
	emergency := textclass.ResolveEmergency(req.Emergency, text)
	severity := textclass.DetectSeverity(text)

	synonyms := textclass.SynonymsIn(req.IssueTag, text)
	if synonyms == nil {
		synonyms = []string{}
	}

	if emergency.Detected {
		metrics.RecordEmergency(TaskType, emergency.Source)
	}

	return &Output{
		IsEmergency:      emergency.Detected,
		EmergencySource:  emergency.Source,
		EmergencyKeyword: emergency.Keyword,
		Severity:         severity,
		Category:         req.Category,
		IssueSynonyms:    synonyms,
		CapabilityTags:   capability.ResolveTags(req, capability.StrategySynonym).Sorted(),
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
	stdErr := matchjob.Classify(err, matchjob.SourceInline)
	metrics.JobFailed(TaskType, string(stdErr.Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
