package mapper

import (
	"encoding/json"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/model"

	"gorm.io/datatypes"
)

type EventMapper struct{}

func NewEventMapper() *EventMapper {
	return &EventMapper{}
}

func (m *EventMapper) ToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.Event{
		Id:        e.Id,
		VisitorId: e.VisitorId,
		EventName: e.EventName,
		PagePath:  e.PagePath,
		Referrer:  e.Referrer,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (m *EventMapper) ToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}

	metadata := datatypes.JSON("{}")
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Event{
		Id:        e.Id,
		VisitorId: e.VisitorId,
		EventName: e.EventName,
		PagePath:  e.PagePath,
		Referrer:  e.Referrer,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (m *EventMapper) ToEntities(models []*model.Event) []*entity.Event {
	entities := make([]*entity.Event, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
