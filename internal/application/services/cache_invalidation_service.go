package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
)

// CacheKeyFunc lists the cache keys that hold views derived from a care plan
type CacheKeyFunc func(event *entities.CarePlanEvent) []string

// CacheInvalidationService drops cached views of a care plan when its
// records are rewritten
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	keys     []CacheKeyFunc
	ctx      context.Context
	cancel   context.CancelFunc
	done     sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service.
// Explanation cache keys are always included; keys adds the rest.
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus, keys ...CacheKeyFunc) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		keys:     append([]CacheKeyFunc{explanationKeys}, keys...),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCarePlanUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to care plan updates: %w", err)
	}

	s.done.Add(1)
	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.done.Wait()
	observability.GetLogger().Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.CarePlanEvent) {
	defer s.done.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.Invalidate(ctx, event)
			cancel()
		}
	}
}

// Invalidate deletes every cached view derived from the event's plan and
// returns the number of keys it tried
func (s *CacheInvalidationService) Invalidate(ctx context.Context, event *entities.CarePlanEvent) int {
	logger := observability.LoggerFromContext(ctx)

	seen := make(map[string]struct{})
	for _, fn := range s.keys {
		for _, key := range fn(event) {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if err := s.cache.Delete(ctx, key); err != nil {
				logger.Warn().Err(err).Str("care_plan_id", event.CarePlanID).Msg("failed to invalidate cache key")
			}
		}
	}

	logger.Info().
		Str("event_id", event.ID).
		Str("care_plan_id", event.CarePlanID).
		Str("event_type", string(event.EventType)).
		Int("keys", len(seen)).
		Msg("invalidated cached care plan views")
	return len(seen)
}

// explanationKeys covers every operation and literacy level of each step
func explanationKeys(event *entities.CarePlanEvent) []string {
	operations := []string{"explain", "simplify", "simplify-detailed"}
	levels := []string{providers.LiteracyBasic, providers.LiteracyIntermediate, providers.LiteracyAdvanced}

	keys := make([]string, 0, len(event.StepIDs)*len(operations)*len(levels))
	for _, stepID := range event.StepIDs {
		for _, op := range operations {
			for _, level := range levels {
				keys = append(keys, ExplanationCacheKey(op, stepID, level))
			}
		}
	}
	return keys
}
