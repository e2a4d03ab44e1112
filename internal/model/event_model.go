package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Event struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VisitorId string         `gorm:"type:varchar(64);index"`
	EventName string         `gorm:"type:varchar(100);not null;index"`
	PagePath  string         `gorm:"type:varchar(255);not null"`
	Referrer  string         `gorm:"type:text"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"index"`
}

func (Event) TableName() string {
	return "events"
}
