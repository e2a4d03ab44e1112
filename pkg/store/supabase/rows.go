package supabase

import (
	"encoding/json"
	"time"

	"portfolio-chat-be/internal/entity"

	"github.com/google/uuid"
)

type sessionRow struct {
	ID        uuid.UUID `json:"id"`
	VisitorID string    `json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type messageRow struct {
	ID         uuid.UUID       `json:"id"`
	SessionID  uuid.UUID       `json:"session_id"`
	VisitorID  string          `json:"visitor_id"`
	Role       string          `json:"role"`
	Content    string          `json:"content"`
	Mode       *string         `json:"mode,omitempty"`
	Confidence *string         `json:"confidence,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type preferenceRow struct {
	VisitorID string    `json:"visitor_id"`
	Role      string    `json:"role"`
	Goal      string    `json:"goal"`
	FromWhere string    `json:"from_where,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type eventRow struct {
	ID        uuid.UUID              `json:"id"`
	VisitorID string                 `json:"visitor_id,omitempty"`
	EventName string                 `json:"event_name"`
	PagePath  string                 `json:"page_path"`
	Referrer  *string                `json:"referrer"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toMessageRow(m *entity.ChatMessage) messageRow {
	row := messageRow{
		ID:         m.Id,
		SessionID:  m.ChatSessionId,
		VisitorID:  m.VisitorId,
		Role:       m.Role,
		Content:    m.Content,
		Mode:       optional(m.Mode),
		Confidence: optional(m.Confidence),
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.Metadata != nil {
		if raw, err := json.Marshal(m.Metadata); err == nil {
			row.Metadata = raw
		}
	}
	return row
}

func (r messageRow) toEntity() *entity.ChatMessage {
	m := &entity.ChatMessage{
		Id:            r.ID,
		ChatSessionId: r.SessionID,
		VisitorId:     r.VisitorID,
		Role:          r.Role,
		Content:       r.Content,
		CreatedAt:     r.CreatedAt,
	}
	if r.Mode != nil {
		m.Mode = *r.Mode
	}
	if r.Confidence != nil {
		m.Confidence = *r.Confidence
	}
	if len(r.Metadata) > 0 && string(r.Metadata) != "null" {
		var md entity.MessageMetadata
		if err := json.Unmarshal(r.Metadata, &md); err == nil {
			m.Metadata = &md
		}
	}
	return m
}

func toEventRow(e *entity.Event) eventRow {
	return eventRow{
		ID:        e.Id,
		VisitorID: e.VisitorId,
		EventName: e.EventName,
		PagePath:  e.PagePath,
		Referrer:  optional(e.Referrer),
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt.UTC(),
	}
}
