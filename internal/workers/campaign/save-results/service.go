package saveresults

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "outreach-campaigns/internal/common/errors"
	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/models"
)

type Recorder struct {
	store    ReportStore
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewRecorder(deps ServiceDependencies) *Recorder {
	return &Recorder{
		store:    deps.Store,
		notifier: deps.Notifier,
		logger:   logger.ForComponent(deps.Logger, "save-results"),
		now:      time.Now,
	}
}

// BuildReport flattens dispatch results into a report, keeping their order.
func BuildReport(results []models.BusinessResult, now time.Time) models.CampaignReport {
	entries := make([]models.ReportEntry, len(results))
	for i, r := range results {
		entries[i] = models.ReportEntry{
			BusinessName:  r.Business.Name,
			BusinessEmail: r.Business.Email,
			Success:       r.Result.Success,
			MessageID:     r.Result.MessageID,
			Error:         r.Result.Error,
		}
	}
	return models.CampaignReport{
		Timestamp: now.UTC().Format(TimestampLayout),
		Results:   entries,
	}
}

// SaveResults overwrites the stored report. Emails are already out by the
// time this runs, so failures are logged and never returned.
func (r *Recorder) SaveResults(ctx context.Context, results []models.BusinessResult) models.CampaignReport {
	report := BuildReport(results, r.now())
	sent, failed := report.Counts()

	if err := r.store.Save(ctx, report); err != nil {
		stdErr := apperrors.NewReportSaveFailedError(err)
		r.logger.Error("Failed to save campaign results", map[string]interface{}{
			"errorCode": stdErr.Code,
			"error":     err,
		})
		return report
	}

	r.logger.Info("Campaign results saved", map[string]interface{}{
		"timestamp": report.Timestamp,
		"sent":      sent,
		"failed":    failed,
	})

	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, report); err != nil {
			r.logger.Warn("Failed to publish campaign summary", map[string]interface{}{
				"error": err,
			})
		}
	}
	return report
}

// LatestReport returns the last saved report, or a REPORT_NOT_FOUND error
// when no campaign has been recorded yet.
func (r *Recorder) LatestReport(ctx context.Context) (models.CampaignReport, error) {
	report, err := r.store.Load(ctx)
	if errors.Is(err, ErrReportNotFound) {
		return models.CampaignReport{}, apperrors.NewReportNotFoundError(err)
	}
	if err != nil {
		return models.CampaignReport{}, apperrors.Normalize(fmt.Errorf("load campaign results: %w", err))
	}
	return report, nil
}

// NewStore picks the report backend. client is only used for BackendRedis.
func NewStore(config *Config, client redis.Cmdable) (ReportStore, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid results config: %w", err)
	}
	if config.Backend == BackendRedis {
		if client == nil {
			return nil, fmt.Errorf("redis client is required for the %s backend", BackendRedis)
		}
		return NewRedisStore(client, config.RedisKey), nil
	}
	return NewFileStore(config.FilePath), nil
}
