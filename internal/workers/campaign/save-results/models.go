package saveresults

import (
	"context"
	"errors"

	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/models"
)

var ErrReportNotFound = errors.New("REPORT_NOT_FOUND")

// ReportStore holds a single report slot. Save replaces whatever was there.
type ReportStore interface {
	Save(ctx context.Context, report models.CampaignReport) error
	Load(ctx context.Context) (models.CampaignReport, error)
}

// Notifier announces a finished campaign.
type Notifier interface {
	Notify(ctx context.Context, report models.CampaignReport) error
}

type ServiceDependencies struct {
	Store    ReportStore
	Notifier Notifier
	Logger   logger.Logger
}

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"
