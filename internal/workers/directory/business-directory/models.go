package businessdirectory

import (
	"context"

	"outreach-campaigns/internal/models"
)

// Store persists the business directory.
type Store interface {
	Load(ctx context.Context) ([]models.Business, error)
	Append(ctx context.Context, b models.Business) error
}

// directoryDocument is the on-disk layout of the JSON store.
type directoryDocument struct {
	Businesses []models.Business `json:"businesses"`
}
