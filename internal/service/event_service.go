package service

import (
	"context"
	"time"

	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/analytics"

	"github.com/google/uuid"
)

type IEventService interface {
	TrackEvent(ctx context.Context, visitorId, referrer string, request *dto.TrackEventRequest) (*dto.TrackEventResponse, error)
}

type eventService struct {
	tracker analytics.Tracker
}

func NewEventService(tracker analytics.Tracker) IEventService {
	return &eventService{tracker: tracker}
}

// TrackEvent hands the event to the analytics sink and returns at once;
// persistence happens on the consumer.
func (es *eventService) TrackEvent(ctx context.Context, visitorId, referrer string, request *dto.TrackEventRequest) (*dto.TrackEventResponse, error) {
	event := &entity.Event{
		Id:        uuid.New(),
		VisitorId: visitorId,
		EventName: request.EventName,
		PagePath:  request.PagePath,
		Referrer:  referrer,
		Metadata:  request.Metadata,
		CreatedAt: time.Now().UTC(),
	}

	es.tracker.Track(ctx, event)

	return &dto.TrackEventResponse{Ok: true, Id: event.Id}, nil
}
