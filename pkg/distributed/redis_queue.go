package distributed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// QueueItem is a unit of work waiting in a RedisQueue. The kiosk pushes
// paid orders here so the bar screen can pop them in arrival order.
type QueueItem struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Priority  float64         `json:"priority"`
	CreatedAt time.Time       `json:"createdAt"`
	Attempts  int             `json:"attempts"`
}

// RedisQueue is a priority queue on a sorted set, with a processing hash
// so items survive a consumer crash and can be requeued.
type RedisQueue struct {
	client     *redis.Client
	name       string
	maxRetries int
}

func NewRedisQueue(client *redis.Client, name string, maxRetries int) *RedisQueue {
	return &RedisQueue{
		client:     client,
		name:       name,
		maxRetries: maxRetries,
	}
}

func (q *RedisQueue) queueKey() string {
	return fmt.Sprintf("queue:%s", q.name)
}

func (q *RedisQueue) processingKey() string {
	return fmt.Sprintf("queue:%s:processing", q.name)
}

func (q *RedisQueue) deadLetterKey() string {
	return fmt.Sprintf("queue:%s:dead", q.name)
}

// Push adds an item. Lower priority scores pop first.
func (q *RedisQueue) Push(ctx context.Context, item *QueueItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal queue item: %w", err)
	}

	return q.client.ZAdd(ctx, q.queueKey(), redis.Z{
		Score:  item.Priority,
		Member: data,
	}).Err()
}

// Pop takes the lowest-scored item and parks it in the processing hash
// until Ack or Requeue. Returns nil when the queue is empty.
func (q *RedisQueue) Pop(ctx context.Context) (*QueueItem, error) {
	results, err := q.client.ZPopMin(ctx, q.queueKey(), 1).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	data := results[0].Member.(string)

	var item QueueItem
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, fmt.Errorf("unmarshal queue item: %w", err)
	}

	if err := q.client.HSet(ctx, q.processingKey(), item.ID, data).Err(); err != nil {
		return nil, err
	}

	return &item, nil
}

// Ack removes a completed item from the processing hash.
func (q *RedisQueue) Ack(ctx context.Context, itemID string) error {
	return q.client.HDel(ctx, q.processingKey(), itemID).Err()
}

// Requeue puts a failed item back, or moves it to the dead letter list
// once it has exhausted its retries.
func (q *RedisQueue) Requeue(ctx context.Context, item *QueueItem) error {
	if err := q.client.HDel(ctx, q.processingKey(), item.ID).Err(); err != nil {
		return err
	}

	item.Attempts++
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal queue item: %w", err)
	}

	if item.Attempts >= q.maxRetries {
		return q.client.RPush(ctx, q.deadLetterKey(), data).Err()
	}

	return q.client.ZAdd(ctx, q.queueKey(), redis.Z{
		Score:  item.Priority,
		Member: data,
	}).Err()
}

// Len reports how many items are waiting.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.ZCard(ctx, q.queueKey()).Result()
}
