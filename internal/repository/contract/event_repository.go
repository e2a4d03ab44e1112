package contract

import (
	"context"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/repository/specification"
)

// EventNameCount is a per event name aggregate.
type EventNameCount struct {
	EventName string
	Count     int64
}

// RoleEventCount counts distinct onboarded visitors of one role that fired
// an event.
type RoleEventCount struct {
	Role      string
	EventName string
	Count     int64
}

type EventRepository interface {
	CreateBatch(ctx context.Context, events []*entity.Event) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountDistinctVisitors(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountDistinctVisitorsByEventName(ctx context.Context, specs ...specification.Specification) ([]EventNameCount, error)
	CountDistinctVisitorsByRole(ctx context.Context, eventNames []string) ([]RoleEventCount, error)
}
