package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-budget-manager/pkg/aggregate"
)

// SummaryCacheRepository caches per-user budget summaries in Redis.
type SummaryCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached summaries
}

func NewSummaryCacheRepository(client *redis.Client, expiration time.Duration) *SummaryCacheRepository {
	return &SummaryCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func summaryKey(userID uuid.UUID) string {
	return fmt.Sprintf("budget_summary:%s", userID)
}

// Get returns the cached summary, or nil on a cache miss.
func (r *SummaryCacheRepository) Get(ctx context.Context, userID uuid.UUID) (*aggregate.Summary, error) {
	key := summaryKey(userID)
	val, err := r.client.Get(ctx, key).Bytes()
	logQuery(ctx, "GET "+key, nil, len(val), err)

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary aggregate.Summary
	if err := json.Unmarshal(val, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Set caches the summary with the repository TTL.
func (r *SummaryCacheRepository) Set(ctx context.Context, userID uuid.UUID, summary *aggregate.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	key := summaryKey(userID)
	err = r.client.Set(ctx, key, data, r.exp).Err()
	logQuery(ctx, "SET "+key, []any{r.exp}, "ok", err)
	return err
}

// Invalidate drops the cached summary.
func (r *SummaryCacheRepository) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := summaryKey(userID)
	err := r.client.Del(ctx, key).Err()
	logQuery(ctx, "DEL "+key, nil, "ok", err)
	return err
}
