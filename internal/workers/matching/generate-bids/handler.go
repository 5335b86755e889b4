package generatebids

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"marketplace-workers/internal/common/camunda"
	apperrors "marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/common/observability"
	"marketplace-workers/internal/matching/bids"
	"marketplace-workers/internal/matching/ranker"
	"marketplace-workers/internal/matching/snapshot"
	"marketplace-workers/internal/workers/matching/matchjob"
)

const (
	TaskType = "generate-bids"
)

type Handler struct {
	config       *Config
	loader       *matchjob.Loader
	bids         *bids.Factory
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source snapshot.Source, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		loader:       matchjob.NewLoader(source, config.SnapshotSource, config.SnapshotLimit),
		bids:         bids.NewFactory(config.IDs),
		obs:          obs,
		errorHandler: apperrors.NewErrorHandler(scoped),
		logger:       scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	done := metrics.JobStarted(TaskType)
	defer done()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := matchjob.Decode(matchjob.RankingSchema, job.Variables, &input); err != nil {
		h.failJob(client, job, err, start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err, start)
		return
	}

	h.logger.Info("bids generated", map[string]interface{}{
		"jobKey":    job.Key,
		"bidCount":  output.BidCount,
		"emergency": output.Diagnostics.IsEmergencyDetected,
		"source":    output.SnapshotSource,
	})
	h.completeJob(client, job, output, start)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	opts := input.Options.Apply(h.config.Defaults, ranker.ModeCategoryBidding)

	candidates, source, err := h.loader.Load(ctx, input.Request, input.Professionals, opts.MaxRadiusKm)
	if err != nil {
		return nil, matchjob.Classify(err, h.loader.SourceName())
	}

	r, err := ranker.New(opts)
	if err != nil {
		return nil, matchjob.Classify(err, source)
	}

	rankStart := time.Now()
	result, err := r.Rank(input.Request, candidates)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	h.obs.RecordMatch(ctx, string(opts.Mode), len(candidates), time.Since(rankStart), outcome)
	if err != nil {
		return nil, matchjob.Classify(err, source)
	}

	offers := h.bids.Build(result.Ranked, result.Emergency.Detected, result.Profile.ResortBids)
	matchjob.RecordResult(result, len(offers))

	return &Output{
		Bids:           offers,
		BidCount:       len(offers),
		HasBids:        len(offers) > 0,
		Diagnostics:    result.Diagnostics,
		SnapshotSource: source,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output, start time.Time) {
	if err := camunda.CompleteJob(context.Background(), client, job.Key, output, camunda.DefaultRetryConfig); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}

	metrics.JobCompleted(TaskType)
	h.obs.RecordJobProcessed(context.Background(), TaskType, "completed")
	h.obs.RecordJobDuration(context.Background(), TaskType, time.Since(start), "completed")
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := matchjob.Classify(err, h.loader.SourceName())
	metrics.JobFailed(TaskType, string(stdErr.Code))
	h.obs.RecordJobProcessed(context.Background(), TaskType, "failed")
	h.obs.RecordJobDuration(context.Background(), TaskType, time.Since(start), "failed")

	h.errorHandler.HandleJobError(context.Background(), client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
