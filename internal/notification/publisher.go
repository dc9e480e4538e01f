package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

const deliveryQueueKey = "notification_events"

// DeliveryEvent is the payload handed to the delivery collaborator.
type DeliveryEvent struct {
	NotificationID uuid.UUID        `json:"notification_id"`
	CaseID         uuid.UUID        `json:"case_id"`
	Recipient      models.Recipient `json:"recipient"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Timestamp      time.Time        `json:"timestamp"`
}

// Publisher enqueues delivery events. Case transitions never wait for
// delivery; they only enqueue.
type Publisher interface {
	Publish(ctx context.Context, event DeliveryEvent) error
}

// RedisPublisher pushes delivery events onto a Redis list consumed by the
// delivery worker.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event DeliveryEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, deliveryQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish delivery event to Redis: %w", err)
	}
	return nil
}
