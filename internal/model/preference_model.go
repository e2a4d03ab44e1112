package model

import "time"

type Preference struct {
	VisitorId string    `gorm:"type:varchar(64);primaryKey"`
	Role      string    `gorm:"type:varchar(30);not null;index"`
	Goal      string    `gorm:"type:varchar(30);not null"`
	FromWhere string    `gorm:"type:varchar(255)"`
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}
