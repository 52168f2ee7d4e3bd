package websocket

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/statline/internal/publisher"
)

const (
	consumerGroup = "ws-broadcast"
	batchSize     = 100
	blockDuration = 1 * time.Second
)

// StreamConsumer reads rebuild events off the Redis stream and hands them
// to the hub for broadcast.
type StreamConsumer struct {
	redis      *redis.Client
	hub        *Hub
	consumerID string
}

// NewStreamConsumer creates a new stream consumer
func NewStreamConsumer(client *redis.Client, h *Hub) *StreamConsumer {
	return &StreamConsumer{
		redis:      client,
		hub:        h,
		consumerID: "ws-" + time.Now().UTC().Format("20060102150405"),
	}
}

// Start begins consuming from the rebuild stream until ctx is cancelled.
func (sc *StreamConsumer) Start(ctx context.Context) {
	stream := publisher.RebuildStream

	err := sc.redis.XGroupCreateMkStream(ctx, stream, consumerGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		log.Printf("Warning: creating consumer group for %s: %v", stream, err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			streams, err := sc.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    consumerGroup,
				Consumer: sc.consumerID,
				Streams:  []string{stream, ">"},
				Count:    batchSize,
				Block:    blockDuration,
			}).Result()

			if err != nil {
				if err == redis.Nil || ctx.Err() != nil {
					continue
				}
				log.Printf("Warning: stream read error (%s): %v", stream, err)
				time.Sleep(1 * time.Second)
				continue
			}

			for _, s := range streams {
				for _, msg := range s.Messages {
					sc.processMessage(ctx, s.Stream, msg)
				}
			}
		}
	}
}

func (sc *StreamConsumer) processMessage(ctx context.Context, stream string, msg redis.XMessage) {
	if data, ok := msg.Values["data"].(string); ok {
		sc.hub.Broadcast([]byte(data))
	} else {
		log.Printf("Warning: malformed stream message in %s: %v", stream, msg.Values)
	}

	if err := sc.redis.XAck(ctx, stream, consumerGroup, msg.ID).Err(); err != nil {
		log.Printf("Warning: acking message %s: %v", msg.ID, err)
	}
}
