package events

import (
	"encoding/json"
	"time"

	"portfolio-chat-be/internal/entity"

	"github.com/google/uuid"
)

// AnalyticsEvent is the wire form of a tracked site event, used on the
// in-process channel, the NATS subjects and the live dashboard feed.
type AnalyticsEvent struct {
	Id        uuid.UUID              `json:"id"`
	VisitorId string                 `json:"visitor_id,omitempty"`
	EventName string                 `json:"event_name"`
	PagePath  string                 `json:"page_path"`
	Referrer  string                 `json:"referrer,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func FromEntity(e *entity.Event) AnalyticsEvent {
	return AnalyticsEvent{
		Id:        e.Id,
		VisitorId: e.VisitorId,
		EventName: e.EventName,
		PagePath:  e.PagePath,
		Referrer:  e.Referrer,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (e AnalyticsEvent) ToEntity() *entity.Event {
	return &entity.Event{
		Id:        e.Id,
		VisitorId: e.VisitorId,
		EventName: e.EventName,
		PagePath:  e.PagePath,
		Referrer:  e.Referrer,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (e AnalyticsEvent) EventType() string {
	return e.EventName
}

func (e AnalyticsEvent) Payload() map[string]interface{} {
	raw, err := json.Marshal(e)
	if err != nil {
		return map[string]interface{}{"event_name": e.EventName}
	}
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return out
}

func (e AnalyticsEvent) Timestamp() time.Time {
	return e.CreatedAt
}

// DecodeAnalyticsEvent parses the JSON produced by Payload or json.Marshal.
func DecodeAnalyticsEvent(data []byte) (AnalyticsEvent, error) {
	var e AnalyticsEvent
	err := json.Unmarshal(data, &e)
	return e, err
}
