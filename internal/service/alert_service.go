package service

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/pkg/mailer"
	"portfolio-chat-be/pkg/events"
	pktNats "portfolio-chat-be/pkg/nats"
)

// AlertDurableName is the JetStream consumer shared by all instances, so each
// fallback is mailed once.
const AlertDurableName = "owner-alert-worker"

// AlertService mails the site owner whenever a visitor is handed the contact
// fallback.
type AlertService struct {
	mailer     mailer.IEmailService
	ownerEmail string
	logger     logger.ILogger
}

func NewAlertService(m mailer.IEmailService, ownerEmail string, log logger.ILogger) *AlertService {
	return &AlertService{
		mailer:     m,
		ownerEmail: ownerEmail,
		logger:     log,
	}
}

// Start subscribes to fallback events on the bus.
func (s *AlertService) Start(sub *pktNats.Subscriber) error {
	subject := pktNats.Subject(constant.EventChatFallbackPhoneShared)
	if err := sub.Subscribe(subject, AlertDurableName, s.handleEvent); err != nil {
		s.logger.Error("AlertService", "Failed to start alert subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("AlertService", fmt.Sprintf("Alert service listening to %s", subject), nil)
	return nil
}

func (s *AlertService) handleEvent(ctx context.Context, event events.Event) error {
	raw, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	decoded, err := events.DecodeAnalyticsEvent(raw)
	if err != nil {
		// malformed payloads are not retried
		s.logger.Warn("AlertService", "Dropping undecodable event", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return s.Notify(ctx, decoded)
}

// Notify mails the owner about one fallback event. Other events are ignored.
func (s *AlertService) Notify(ctx context.Context, event events.AnalyticsEvent) error {
	if event.EventName != constant.EventChatFallbackPhoneShared {
		return nil
	}
	if s.mailer == nil || s.ownerEmail == "" {
		return nil
	}

	alert := mailer.FallbackAlert{
		VisitorId:  event.VisitorId,
		SessionId:  metadataString(event.Metadata, "session_id"),
		Question:   metadataString(event.Metadata, "question"),
		OccurredAt: event.CreatedAt,
	}

	if err := s.mailer.SendFallbackAlert(s.ownerEmail, alert); err != nil {
		s.logger.Error("AlertService", "Failed to send fallback alert", map[string]interface{}{
			"visitor_id": event.VisitorId,
			"error":      err.Error(),
		})
		return err
	}

	s.logger.Info("AlertService", "Fallback alert sent", map[string]interface{}{"visitor_id": event.VisitorId})
	return nil
}

func metadataString(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}
