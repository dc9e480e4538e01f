package notification

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

// StatusStore records delivery outcomes on the notification record.
type StatusStore interface {
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus) error
}

// DeliveryWorker drains the delivery queue and posts events to the delivery
// gateway. Delivery failures are recorded on the notification and never
// touch case state.
type DeliveryWorker struct {
	redisClient *redis.Client
	store       StatusStore
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

func NewDeliveryWorker(redisClient *redis.Client, store StatusStore, logger *logrus.Logger, cfg *config.Config) *DeliveryWorker {
	return &DeliveryWorker{
		redisClient: redisClient,
		store:       store,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.DeliveryTimeout,
		},
	}
}

// Start launches the queue-draining goroutine.
func (w *DeliveryWorker) Start(ctx context.Context) {
	w.logger.Info("Starting notification delivery worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification delivery worker.")
				return
			default:
				result, err := w.redisClient.BRPop(ctx, 0, deliveryQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop delivery event from Redis")
					time.Sleep(w.cfg.DeliveryTimeout)
					continue
				}

				payload := result[1]
				var event DeliveryEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal delivery event from Redis")
					continue
				}

				w.deliver(ctx, event, payload)
			}
		}
	}()
}

func (w *DeliveryWorker) deliver(ctx context.Context, event DeliveryEvent, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"notification_id": event.NotificationID,
		"recipient":       event.Recipient,
	})
	log.Debug("Processing delivery event...")

	if w.cfg.DeliveryURL == "" {
		log.Warn("Delivery URL is not configured. Skipping notification delivery.")
		return
	}

	maxRetries := w.cfg.DeliveryMaxRetries
	baseDelay := w.cfg.DeliveryBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.DeliveryURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Errorf("Failed to create delivery request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")

		if w.cfg.DeliverySecret != "" {
			signature := generateHMACSHA256(rawPayload, w.cfg.DeliverySecret)
			req.Header.Set("X-Delivery-Signature", signature)
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to send notification. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			w.markStatus(ctx, event.NotificationID, models.DeliverySent)
			log.Info("Notification handed to delivery gateway.")
			return
		}
		log.Warnf("Delivery gateway returned status %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2
	}

	w.markStatus(ctx, event.NotificationID, models.DeliveryFailed)
	log.Errorf("Failed to deliver notification after %d retries.", maxRetries)
}

func (w *DeliveryWorker) markStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus) {
	if err := w.store.UpdateNotificationStatus(ctx, id, status); err != nil {
		w.logger.WithError(err).WithField("notification_id", id).Error("Failed to record delivery status")
	}
}

// generateHMACSHA256 signs the payload for the delivery gateway.
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
