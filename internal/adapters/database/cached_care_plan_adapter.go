package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
)

// CachedCarePlanAdapter wraps a CarePlanRepository with read-through caching
// of single plans. Plans are immutable once seeded.
type CachedCarePlanAdapter struct {
	adapter repositories.CarePlanRepository
	cache   providers.CacheProvider
	ttl     int
}

// NewCachedCarePlanAdapter creates a new cached care plan adapter
func NewCachedCarePlanAdapter(adapter repositories.CarePlanRepository, cache providers.CacheProvider, ttlSeconds int) repositories.CarePlanRepository {
	return &CachedCarePlanAdapter{
		adapter: adapter,
		cache:   cache,
		ttl:     ttlSeconds,
	}
}

// CarePlanCacheKey is the cache key of a single stored plan
func CarePlanCacheKey(id string) string {
	return fmt.Sprintf("care_plan:%s", id)
}

// Create creates the plan and drops any stale cache entry
func (a *CachedCarePlanAdapter) Create(ctx context.Context, plan *entities.CarePlan) error {
	if err := a.adapter.Create(ctx, plan); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, CarePlanCacheKey(plan.ID)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("care_plan_id", plan.ID).Msg("failed to invalidate cached care plan")
	}
	return nil
}

// GetByID retrieves a care plan by ID with caching
func (a *CachedCarePlanAdapter) GetByID(ctx context.Context, id string) (*entities.CarePlan, error) {
	logger := observability.LoggerFromContext(ctx)
	cacheKey := CarePlanCacheKey(id)

	cached, err := a.cache.Get(ctx, cacheKey)
	if err != nil {
		logger.Warn().Err(err).Str("care_plan_id", id).Msg("care plan cache read failed")
	} else if cached != nil {
		var plan entities.CarePlan
		uerr := json.Unmarshal(cached, &plan)
		if uerr == nil {
			return &plan, nil
		}
		logger.Warn().Err(uerr).Str("care_plan_id", id).Msg("failed to unmarshal cached care plan")
	}

	plan, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(plan); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, a.ttl); err != nil {
			logger.Warn().Err(err).Str("care_plan_id", id).Msg("failed to cache care plan")
		}
	}
	return plan, nil
}

// List is not cached
func (a *CachedCarePlanAdapter) List(ctx context.Context) ([]*entities.CarePlan, error) {
	return a.adapter.List(ctx)
}
