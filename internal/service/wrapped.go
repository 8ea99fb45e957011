package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

const wrappedCacheTTL = time.Hour

type WrappedRepository interface {
	Aggregate(ctx context.Context, userID, festivalID uuid.UUID) (domain.Wrapped, error)
}

type WrappedService struct {
	repo  WrappedRepository
	cache *redis.Client
}

// NewWrappedService builds the wrapped-stats service. cache may be nil, in
// which case every read hits the store.
func NewWrappedService(repo WrappedRepository, cache *redis.Client) *WrappedService {
	return &WrappedService{
		repo:  repo,
		cache: cache,
	}
}

func wrappedCacheKey(userID, festivalID uuid.UUID) string {
	return fmt.Sprintf("wrapped:%s:%s", userID, festivalID)
}

// GetWrapped returns the cached aggregate when present, otherwise runs the
// store-side aggregation and caches the result. Cache failures degrade to
// direct reads.
func (s *WrappedService) GetWrapped(ctx context.Context, userID, festivalID uuid.UUID) (domain.Wrapped, error) {
	key := wrappedCacheKey(userID, festivalID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var wrapped domain.Wrapped
			if err = json.Unmarshal(cached, &wrapped); err == nil {
				return wrapped, nil
			}
		} else if err != redis.Nil {
			zap.L().Warn("wrapped cache read failed", zap.Error(err))
		}
	}

	wrapped, err := s.repo.Aggregate(ctx, userID, festivalID)
	if err != nil {
		return domain.Wrapped{}, fmt.Errorf("s.repo.Aggregate -> %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(wrapped); err == nil {
			if err = s.cache.Set(ctx, key, payload, wrappedCacheTTL).Err(); err != nil {
				zap.L().Warn("wrapped cache write failed", zap.Error(err))
			}
		}
	}

	return wrapped, nil
}
