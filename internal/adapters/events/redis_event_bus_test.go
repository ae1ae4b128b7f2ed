package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/adapters/events"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	redisclient "github.com/zatekoja/careplannavigator/internal/infrastructure/clients/redis"
)

func unreachableBus(t *testing.T) *events.RedisEventBus {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return events.NewRedisEventBus(redisclient.Wrap(rdb))
}

func TestRedisEventBus_PublishFailsWithoutServer(t *testing.T) {
	bus := unreachableBus(t)
	defer bus.Close()

	err := bus.Publish(context.Background(), providers.EventChannelCarePlanUpdates,
		entities.NewCarePlanEvent("plan-1", nil, entities.CarePlanEventSeeded))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestRedisEventBus_SubscriberChannelClosesWithContext(t *testing.T) {
	bus := unreachableBus(t)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, providers.EventChannelCarePlanUpdates)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber channel was not closed")
	}
}
