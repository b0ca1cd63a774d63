package runcampaign

import (
	"context"

	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/common/observability"
	"outreach-campaigns/internal/models"
	sendproposals "outreach-campaigns/internal/workers/campaign/send-proposals"
)

type BusinessSource interface {
	LoadOrEmpty(ctx context.Context) []models.Business
}

type ProposalDispatcher interface {
	SendProposals(ctx context.Context, businesses []models.Business, opts sendproposals.Options) []models.BusinessResult
}

type ResultsRecorder interface {
	SaveResults(ctx context.Context, results []models.BusinessResult) models.CampaignReport
}

type ServiceDependencies struct {
	Directory     BusinessSource
	Dispatcher    ProposalDispatcher
	Recorder      ResultsRecorder
	Observability *observability.Observability
	Logger        logger.Logger
}

const (
	ModeAll      = "all"
	ModeFiltered = "filtered"
)
