package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// VaccinationUpdatesChannel is the pub/sub channel every booking event is published on.
	VaccinationUpdatesChannel = "vaccination:updates"

	bookingStatusTTL = 24 * time.Hour
)

// InitRedis connects to redisURL and checks the connection.
func InitRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return client, nil
}

// RedisNotifier publishes booking events and keeps the last known status of
// each booking under a short-lived key.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func bookingStatusKey(id string) string {
	return fmt.Sprintf("vaccination:booking:%s:status", id)
}

func (n *RedisNotifier) Notify(ctx context.Context, e BookingEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pipe := n.client.TxPipeline()
	pipe.Publish(ctx, VaccinationUpdatesChannel, data)
	if e.Type == EventVaccinationDeleted {
		pipe.Del(ctx, bookingStatusKey(e.BookingID))
	} else {
		pipe.Set(ctx, bookingStatusKey(e.BookingID), string(e.Status), bookingStatusTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Ping checks the Redis connection.
func (n *RedisNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}
