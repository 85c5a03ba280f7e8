package distributed

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

const liveChannel = "live:updates"

// LiveUpdate is the cross-instance notification published when a match
// changes. Every instance re-broadcasts it to its own websocket clients
// so all viewers see the same state regardless of which instance took
// the controller's request.
type LiveUpdate struct {
	Type    string          `json:"type"`
	MatchID string          `json:"matchId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// LiveCoordinator fans out live updates between instances over Redis
// pub/sub.
type LiveCoordinator struct {
	client  *redis.Client
	handler func(*LiveUpdate)

	mu      sync.Mutex
	pubsub  *redis.PubSub
	stopped bool
	wg      sync.WaitGroup
}

func NewLiveCoordinator(client *redis.Client, handler func(*LiveUpdate)) *LiveCoordinator {
	return &LiveCoordinator{
		client:  client,
		handler: handler,
	}
}

// Start subscribes and pumps incoming updates to the handler until Stop.
func (c *LiveCoordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pubsub != nil {
		return nil
	}

	c.pubsub = c.client.Subscribe(ctx, liveChannel)

	// Force the subscription to be established before returning.
	if _, err := c.pubsub.Receive(ctx); err != nil {
		c.pubsub = nil
		return err
	}

	ch := c.pubsub.Channel()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for msg := range ch {
			var update LiveUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				logger.Warn("Discarding malformed live update", "error", err)
				continue
			}
			c.handler(&update)
		}
	}()

	logger.Info("Live coordinator subscribed")
	return nil
}

// Publish sends an update to every subscribed instance, this one included.
func (c *LiveCoordinator) Publish(ctx context.Context, update *LiveUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, liveChannel, data).Err()
}

// Stop unsubscribes and waits for the pump goroutine to drain.
func (c *LiveCoordinator) Stop() {
	c.mu.Lock()
	if c.stopped || c.pubsub == nil {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	pubsub := c.pubsub
	c.mu.Unlock()

	pubsub.Close()
	c.wg.Wait()
	logger.Info("Live coordinator stopped")
}
