package enrichmentinfra

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestQueue connects to REDIS_ADDR (default localhost:6379) and skips
// when no server answers
func newTestQueue(t *testing.T) *RedisQueue {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	q := NewRedisQueue(client, "hiresight:test:"+uuid.NewString())
	t.Cleanup(func() {
		client.Del(context.Background(), q.queueName, q.delayedKey())
		client.Close()
	})
	return q
}

func testJob(id string) enrichment.Job {
	return enrichment.Job{
		ID:          kernel.NewEnrichmentJobID("job-" + id),
		TenantID:    "t1",
		CandidateID: kernel.NewCandidateID("c-" + id),
		Attempt:     1,
		MaxAttempts: 3,
		EnqueuedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		LastError:   "resume unreadable",
	}
}

func TestRedisQueue_EnqueueDequeue(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	first, second := testJob("1"), testJob("2")
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.TenantID, got.TenantID)
	assert.Equal(t, first.CandidateID, got.CandidateID)
	assert.Equal(t, first.Attempt, got.Attempt)
	assert.Equal(t, first.MaxAttempts, got.MaxAttempts)
	assert.Equal(t, first.LastError, got.LastError)
	assert.True(t, first.EnqueuedAt.Equal(got.EnqueuedAt))

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
}

func TestRedisQueue_DequeueTimeout(t *testing.T) {
	q := newTestQueue(t)

	got, err := q.Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisQueue_MoveDelayedToReady(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	due, later := testJob("due"), testJob("later")
	due.Attempt = 2
	require.NoError(t, q.EnqueueDelayed(ctx, due, -time.Minute))
	require.NoError(t, q.EnqueueDelayed(ctx, later, time.Hour))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Ready)
	assert.Equal(t, int64(2), stats.Delayed)

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	moved, err = q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)

	stats, err = q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Ready)
	assert.Equal(t, int64(1), stats.Delayed)

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, due.ID, got.ID)
	assert.Equal(t, 2, got.Attempt)
}
