package dto

import "time"

type DashboardLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type DashboardLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type FunnelStep struct {
	EventName      string  `json:"event_name"`
	Visitors       int64   `json:"visitors"`
	ConversionRate float64 `json:"conversion_rate"`
}

type RoleBreakdown struct {
	Role       string `json:"role"`
	Visitors   int64  `json:"visitors"`
	Onboarding int64  `json:"onboarding"`
	Resume     int64  `json:"resume"`
	Contact    int64  `json:"contact"`
}

type DailyActivity struct {
	Date   string           `json:"date"`
	Total  int64            `json:"total"`
	Events map[string]int64 `json:"events"`
}

type DashboardStats struct {
	UniqueVisitors7d int64           `json:"unique_visitors_7d"`
	ChatSessions7d   int64           `json:"chat_sessions_7d"`
	ChatMessages7d   int64           `json:"chat_messages_7d"`
	Funnel           []FunnelStep    `json:"funnel"`
	Roles            []RoleBreakdown `json:"roles"`
	Activity         []DailyActivity `json:"activity"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

type DashboardLogsRequest struct {
	Level  string `query:"level"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
