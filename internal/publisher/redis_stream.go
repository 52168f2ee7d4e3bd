// Package publisher emits rebuild events to a Redis stream so downstream
// consumers (the websocket broadcaster, external subscribers) learn when
// the derived artifacts changed.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RebuildStream is the stream every rebuild event lands on.
const RebuildStream = "stats.rebuilt.basketball"

// RebuildEvent describes one completed derived rebuild.
type RebuildEvent struct {
	TriggeredBy  string    `json:"triggered_by"`
	GameID       string    `json:"game_id,omitempty"`
	Games        int       `json:"games"`
	PlayerTotals int       `json:"player_totals"`
	Leaderboards int       `json:"leaderboards"`
	Records      int       `json:"records"`
	RebuiltAt    time.Time `json:"rebuilt_at"`
}

// RedisStreamPublisher publishes rebuild events to a Redis stream.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishRebuild appends a rebuild event to the stream.
func (p *RedisStreamPublisher) PublishRebuild(ctx context.Context, event RebuildEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: RebuildStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
