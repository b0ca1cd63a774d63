package runcampaign

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/common/metrics"
	"outreach-campaigns/internal/common/observability"
	"outreach-campaigns/internal/models"
	sendproposals "outreach-campaigns/internal/workers/campaign/send-proposals"
	filterbusinesses "outreach-campaigns/internal/workers/directory/filter-businesses"
)

// Runner chains the directory, the filter, the dispatcher and the recorder.
type Runner struct {
	directory  BusinessSource
	dispatcher ProposalDispatcher
	recorder   ResultsRecorder
	obs        *observability.Observability
	logger     logger.Logger
}

func NewRunner(deps ServiceDependencies) *Runner {
	obs := deps.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Runner{
		directory:  deps.Directory,
		dispatcher: deps.Dispatcher,
		recorder:   deps.Recorder,
		obs:        obs,
		logger:     logger.ForComponent(deps.Logger, "run-campaign"),
	}
}

// RunAll sends to every business in the directory.
func (r *Runner) RunAll(ctx context.Context, opts sendproposals.Options) models.CampaignReport {
	return r.run(ctx, ModeAll, models.CampaignFilter{}, opts)
}

// RunFiltered sends to the businesses that match filter.
func (r *Runner) RunFiltered(ctx context.Context, filter models.CampaignFilter, opts sendproposals.Options) models.CampaignReport {
	return r.run(ctx, ModeFiltered, filter, opts)
}

func (r *Runner) run(ctx context.Context, mode string, filter models.CampaignFilter, opts sendproposals.Options) models.CampaignReport {
	start := time.Now()
	runID := uuid.NewString()
	log := r.logger.With(map[string]interface{}{"runId": runID, "mode": mode})

	metrics.CampaignsActive.Inc()
	defer metrics.CampaignsActive.Dec()

	ctx, span := r.obs.StartSpan(ctx, "campaign-run",
		attribute.String("campaign.id", runID),
		attribute.String("campaign.mode", mode),
	)
	defer span.End()

	businesses := r.directory.LoadOrEmpty(ctx)
	targets := filterbusinesses.Apply(businesses, filter)
	log.Info("Starting campaign", map[string]interface{}{
		"directorySize": len(businesses),
		"targets":       len(targets),
	})

	results := r.dispatcher.SendProposals(ctx, targets, opts)
	// Results are recorded even when ctx was cancelled mid-run.
	report := r.recorder.SaveResults(context.WithoutCancel(ctx), results)

	sent, failed := report.Counts()
	elapsed := time.Since(start)
	r.obs.RecordCampaignRun(ctx, mode, elapsed, sent, failed)
	span.SetAttributes(attribute.Int("campaign.sent", sent), attribute.Int("campaign.failed", failed))

	log.Info("Campaign finished", map[string]interface{}{
		"sent":     sent,
		"failed":   failed,
		"duration": elapsed.String(),
	})
	return report
}
