// Package events publishes ingestion events to Redis pub/sub for downstream
// consumers (Gateway SSE forward, dedup jobs).
package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher implements ingest.EventPublisher on a redis client.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a publisher backed by rdb.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Publish sends payload on the given channel.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}
