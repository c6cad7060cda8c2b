package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClients splits the two Redis roles this service has. Queue carries
// the report-delivery job list, worker locks and refresh tokens; PubSub
// feeds the websocket hub. Keeping the blocking subscribe traffic on its
// own connection keeps it out of the queue client's pool.
type RedisClients struct {
	Queue  *redis.Client
	PubSub *redis.Client
}

func NewRedisClients(redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	queue, err := connectRedis(opt)
	if err != nil {
		return nil, fmt.Errorf("redis queue client: %w", err)
	}

	pubsubOpt := *opt
	pubsub, err := connectRedis(&pubsubOpt)
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("redis pubsub client: %w", err)
	}

	return &RedisClients{Queue: queue, PubSub: pubsub}, nil
}

func connectRedis(opt *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (r *RedisClients) Close() {
	r.Queue.Close()
	r.PubSub.Close()
}
