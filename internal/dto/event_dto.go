package dto

import "github.com/google/uuid"

type TrackEventRequest struct {
	EventName string                 `json:"event_name" validate:"required,max=100"`
	PagePath  string                 `json:"page_path" validate:"required,max=255"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type TrackEventResponse struct {
	Ok bool      `json:"ok"`
	Id uuid.UUID `json:"id"`
}
