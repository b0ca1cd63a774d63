package saveresults

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"outreach-campaigns/internal/models"
)

// RedisStore keeps the last report as a JSON string under one key.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, report models.CampaignReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (models.CampaignReport, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.CampaignReport{}, fmt.Errorf("%w: key %s", ErrReportNotFound, s.key)
	}
	if err != nil {
		return models.CampaignReport{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var report models.CampaignReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return models.CampaignReport{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}
