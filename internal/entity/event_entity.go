package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Id        uuid.UUID
	VisitorId string
	EventName string
	PagePath  string
	Referrer  string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
