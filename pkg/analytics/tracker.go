// Package analytics hands tracked site events to the asynchronous sink.
// Tracking is fire-and-forget: failures are logged, never returned.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const DefaultTopic = "analytics.events"

type Tracker interface {
	Track(ctx context.Context, events ...*entity.Event)
}

// ChannelTracker publishes events to a watermill publisher, normally the
// in-process gochannel drained by the analytics consumer.
type ChannelTracker struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewChannelTracker(publisher message.Publisher, topic string, logger logger.ILogger) *ChannelTracker {
	if topic == "" {
		topic = DefaultTopic
	}
	return &ChannelTracker{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

func (t *ChannelTracker) Track(ctx context.Context, evts ...*entity.Event) {
	for _, e := range evts {
		if e.Id == uuid.Nil {
			e.Id = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}

		payload, err := json.Marshal(events.FromEntity(e))
		if err != nil {
			t.logger.Error("ANALYTICS", "Failed to encode event", map[string]interface{}{
				"event_name": e.EventName,
				"error":      err.Error(),
			})
			continue
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(context.WithoutCancel(ctx))
		if err := t.publisher.Publish(t.topic, msg); err != nil {
			t.logger.Error("ANALYTICS", "Failed to publish event", map[string]interface{}{
				"event_name": e.EventName,
				"error":      err.Error(),
			})
		}
	}
}
