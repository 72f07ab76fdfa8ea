package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/events"
	"github.com/slayscreens/showdesk/internal/models"
)

// FeedEntry is the change-feed record pushed to Redis for external
// consumers (cache invalidation, analytics).
type FeedEntry struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	RecordID   int64     `json:"record_id,omitempty"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChangeFeedWorker listens for collection change events and relays
// them to a Redis list. Delivery is at-least-once: failed pushes are
// retried with backoff and land on a dead-letter list when exhausted.
type ChangeFeedWorker struct {
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan FeedEntry
	queueKey      string
	deadLetterKey string
	logger        *zerolog.Logger
}

func NewChangeFeedWorker(redisClient *redis.Client, queueKey, deadLetterKey string, retry RetryPolicy, logger *zerolog.Logger) *ChangeFeedWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &ChangeFeedWorker{
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan FeedEntry, models.ChangeFeedQueueSize),
		queueKey:      queueKey,
		deadLetterKey: deadLetterKey,
		logger:        logger,
	}
}

// Register subscribes the worker to the change topic of every
// collection on the given bus.
func (w *ChangeFeedWorker) Register(bus *events.EventBus) {
	for _, key := range models.AllKeys() {
		bus.Subscribe(events.TypeChanged(key), w.handleEvent)
	}
}

func (w *ChangeFeedWorker) handleEvent(event *events.Event) error {
	var payload events.ChangePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		w.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to decode change event")
		return err
	}

	entry := FeedEntry{
		Collection: payload.Collection,
		Action:     payload.Action,
		RecordID:   payload.RecordID,
		Count:      payload.Count,
		OccurredAt: event.CreatedAt,
	}

	select {
	case w.queue <- entry:
	default:
		// Publishers must never block on a slow feed.
		w.logger.Warn().Str("collection", entry.Collection).Msg("Change feed queue full, entry dropped")
	}
	return nil
}

// Start drains the queue until ctx is done.
func (w *ChangeFeedWorker) Start(ctx context.Context) {
	w.logger.Info().Str("queue_key", w.queueKey).Msg("Change feed worker started")
	defer w.logger.Info().Msg("Change feed worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-w.queue:
			w.deliver(ctx, entry)
		}
	}
}

func (w *ChangeFeedWorker) deliver(ctx context.Context, entry FeedEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to encode feed entry")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		lastErr = w.redis.LPush(ctx, w.queueKey, data).Err()
		if lastErr == nil {
			return
		}

		delay := w.retryPolicy.NextDelay(attempt)
		w.logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("next_delay", delay).
			Msg("Change feed push failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	w.logger.Error().Err(lastErr).Str("collection", entry.Collection).Msg("Change feed delivery exhausted, sending to dead letter")
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Msg("Dead letter push failed")
	}
}
