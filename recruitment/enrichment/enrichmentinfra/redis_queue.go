package enrichmentinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
	"github.com/go-redis/redis/v8"
)

// moveDue pops due members from the delayed set and pushes them to the ready
// list in one step, so two movers never promote the same job twice
var moveDue = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, ARGV[2])
for _, member in ipairs(due) do
	redis.call('ZREM', KEYS[1], member)
	redis.call('LPUSH', KEYS[2], member)
end
return #due
`)

const moveBatch = 500

// RedisQueue implements enrichment.JobQueue with a ready list and a delayed
// sorted set scored by due time
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, job enrichment.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal enrichment job %s: %w", job.ID, err)
	}
	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue enrichment job %s: %w", job.ID, err)
	}
	return nil
}

// Dequeue gets a job from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*enrichment.Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue enrichment job: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job enrichment.Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("decode enrichment job: %w", err)
	}
	return &job, nil
}

// EnqueueDelayed schedules a retry for later processing
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job enrichment.Job, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed enrichment job %s: %w", job.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), &redis.Z{Score: score, Member: data}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed enrichment job %s: %w", job.ID, err)
	}
	return nil
}

// MoveDelayedToReady moves due retries to the ready list
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	moved, err := moveDue.Run(ctx, q.client, []string{q.delayedKey(), q.queueName}, now, moveBatch).Int()
	if err != nil {
		return 0, fmt.Errorf("move delayed enrichment jobs: %w", err)
	}
	return moved, nil
}

// Stats returns the ready and delayed backlog sizes
func (q *RedisQueue) Stats(ctx context.Context) (enrichment.Stats, error) {
	pipe := q.client.Pipeline()
	ready := pipe.LLen(ctx, q.queueName)
	delayed := pipe.ZCard(ctx, q.delayedKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return enrichment.Stats{}, fmt.Errorf("get queue stats: %w", err)
	}
	return enrichment.Stats{
		Queue:   q.queueName,
		Ready:   ready.Val(),
		Delayed: delayed.Val(),
	}, nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
