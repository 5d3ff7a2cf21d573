package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClientOptions parses redisURL and applies the ingest service's client
// tuning. Publishing EVENT_POSTING_INGESTED is fire-and-forget from the
// pipeline's point of view, so writes get a short timeout rather than
// stalling an ingestion request on a slow broker.
func ClientOptions(redisURL string) (*redis.Options, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL %q: %w", redisURL, err)
	}
	opts.WriteTimeout = 2 * time.Second
	opts.MaxRetries = 1
	return opts, nil
}

// NewRedisClient opens the event-publisher client and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := ClientOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("event publisher ping failed: %w", err)
	}

	return client, nil
}
