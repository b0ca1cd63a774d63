package businessdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"outreach-campaigns/internal/common/database"
	apperrors "outreach-campaigns/internal/common/errors"
	"outreach-campaigns/internal/common/logger"
	"outreach-campaigns/internal/common/validation"
	"outreach-campaigns/internal/models"
)

type ServiceDependencies struct {
	Store  Store
	Logger logger.Logger
}

// Directory validates records before they reach the store.
type Directory struct {
	store  Store
	logger logger.Logger
}

func NewDirectory(deps ServiceDependencies) *Directory {
	return &Directory{
		store:  deps.Store,
		logger: logger.ForComponent(deps.Logger, "business-directory"),
	}
}

// List returns every stored business in insertion order.
func (d *Directory) List(ctx context.Context) ([]models.Business, error) {
	businesses, err := d.store.Load(ctx)
	if err != nil {
		return nil, apperrors.NewBusinessLoadFailedError(err)
	}
	return businesses, nil
}

// LoadOrEmpty is List for campaign runs: a failed load is logged and yields
// no businesses.
func (d *Directory) LoadOrEmpty(ctx context.Context) []models.Business {
	businesses, err := d.List(ctx)
	if err != nil {
		d.logger.Error("Error loading businesses", map[string]interface{}{"error": err})
		return []models.Business{}
	}
	return businesses
}

// Add normalizes and validates b, then appends it to the store. A reload
// returns the normalized record.
func (d *Directory) Add(ctx context.Context, b models.Business) error {
	b = normalize(b)

	result, err := validation.ValidateBusiness(b)
	if err != nil {
		return apperrors.NewBusinessSaveFailedError(err)
	}
	if !result.Valid {
		return apperrors.NewValidationError(strings.Join(result.GetErrorMessages(), "; ")).
			WithMetadata("business", b.Name)
	}

	if err := d.store.Append(ctx, b); err != nil {
		return apperrors.NewBusinessSaveFailedError(err)
	}

	d.logger.Info("Business added", map[string]interface{}{
		"name": b.Name,
		"type": b.Type,
	})
	return nil
}

// Summarize condenses businesses to name, type, website flag and rating.
func Summarize(businesses []models.Business) []models.BusinessSummary {
	out := make([]models.BusinessSummary, 0, len(businesses))
	for _, b := range businesses {
		s := models.BusinessSummary{Name: b.Name, Type: b.Type}
		if b.CurrentWebPresence != nil {
			hasWebsite := b.CurrentWebPresence.HasWebsite
			s.HasWebsite = &hasWebsite
			s.Rating = b.CurrentWebPresence.OnlineReviews
		}
		out = append(out, s)
	}
	return out
}

// SummaryJSON renders Summarize as indented JSON.
func SummaryJSON(businesses []models.Business) (string, error) {
	raw, err := json.MarshalIndent(Summarize(businesses), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	return string(raw), nil
}

// normalize trims whitespace and drops blank tags.
func normalize(b models.Business) models.Business {
	b.Name = strings.TrimSpace(b.Name)
	b.Type = strings.TrimSpace(b.Type)
	b.Address = strings.TrimSpace(b.Address)
	b.Email = strings.TrimSpace(b.Email)
	b.Website = strings.TrimSpace(b.Website)
	b.Phone = strings.TrimSpace(b.Phone)

	if b.Tags != nil {
		tags := make([]string, 0, len(b.Tags))
		for _, t := range b.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		if len(tags) == 0 {
			tags = nil
		}
		b.Tags = tags
	}
	return b
}

// ParseTags splits a comma separated tag list.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NewStore builds the store selected by config. pg is only used by the
// postgres backend.
func NewStore(config *Config, pg *database.PostgresClient) (Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid directory config: %w", err)
	}
	if config.Backend == BackendPostgres {
		if pg == nil {
			return nil, fmt.Errorf("postgres client is required for the %s backend", BackendPostgres)
		}
		return NewPostgresStore(pg, config.Table), nil
	}
	return NewFileStore(config.FilePath), nil
}
