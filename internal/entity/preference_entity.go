package entity

import "time"

// Preference holds the answers a visitor gave during onboarding.
type Preference struct {
	VisitorId string
	Role      string
	Goal      string
	FromWhere string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
