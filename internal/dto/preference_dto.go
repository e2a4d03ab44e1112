package dto

import "time"

type SavePreferenceRequest struct {
	Role      string `json:"role" validate:"required,oneof=recruiter friends love-interest ex other"`
	Goal      string `json:"goal" validate:"required,oneof=see-projects view-resume contact just-browsing"`
	FromWhere string `json:"from_where" validate:"max=255"`
	Message   string `json:"message" validate:"max=1000"`
}

type PreferenceResponse struct {
	Role      string    `json:"role"`
	Goal      string    `json:"goal"`
	FromWhere string    `json:"from_where,omitempty"`
	Mode      string    `json:"mode"`
	UpdatedAt time.Time `json:"updated_at"`
}
