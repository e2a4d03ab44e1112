// FILE: internal/service/consumer_service.go
package service

import (
	"context"

	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/events"
	"portfolio-chat-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventPublisher forwards persisted events to the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// LiveFeed pushes events to connected dashboards.
type LiveFeed interface {
	Publish(ctx context.Context, event events.AnalyticsEvent)
}

// FallbackNotifier alerts the owner about a fallback event.
type FallbackNotifier interface {
	Notify(ctx context.Context, event events.AnalyticsEvent) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	store      store.Store
	publisher  EventPublisher
	live       LiveFeed
	notifier   FallbackNotifier
	logger     logger.ILogger
}

// NewConsumerService drains tracked events. When publisher is set every
// stored event goes to the bus, and the live feed and owner alert listen
// there; otherwise, or when the bus rejects it, live and notifier are called
// in process. Any of
// publisher, live and notifier may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	chatStore store.Store,
	publisher EventPublisher,
	live LiveFeed,
	notifier FallbackNotifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		store:      chatStore,
		publisher:  publisher,
		live:       live,
		notifier:   notifier,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: analytics are best effort and a nacked message
// on the in-process channel would be redelivered in a tight loop while
// storage is down.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.DecodeAnalyticsEvent(msg.Payload)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to decode analytics event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if err := cs.store.InsertEvents(ctx, event.ToEntity()); err != nil {
		cs.logger.Error("CONSUMER", "Failed to persist analytics event", map[string]interface{}{
			"event_name": event.EventName,
			"visitor_id": event.VisitorId,
			"error":      err.Error(),
		})
	}

	if cs.publisher != nil {
		err := cs.publisher.Publish(ctx, event)
		if err == nil {
			return
		}
		cs.logger.Warn("CONSUMER", "Failed to publish analytics event to bus, delivering in process", map[string]interface{}{
			"event_name": event.EventName,
			"error":      err.Error(),
		})
	}

	if cs.live != nil {
		cs.live.Publish(ctx, event)
	}
	if cs.notifier != nil {
		_ = cs.notifier.Notify(ctx, event)
	}
}
