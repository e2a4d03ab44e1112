package handler

import (
	"portfolio-chat-be/internal/pkg/logger"
	internalWS "portfolio-chat-be/internal/websocket"
	"portfolio-chat-be/pkg/events"
	pktNats "portfolio-chat-be/pkg/nats"
)

// LiveHandler relays every analytics event on the bus to the dashboard
// sockets of this instance.
type LiveHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: log,
	}
}

// Start uses a core subscription so each instance sees every event.
func (h *LiveHandler) Start(sub *pktNats.Subscriber) error {
	subject := pktNats.SubjectPrefix + ".>"
	if err := sub.Listen(subject, h.HandleMessage); err != nil {
		h.logger.Error("LiveHandler", "Failed to listen for live events", map[string]interface{}{"error": err.Error()})
		return err
	}
	h.logger.Info("LiveHandler", "Relaying "+subject+" to dashboard sockets", nil)
	return nil
}

func (h *LiveHandler) HandleMessage(subject string, data []byte) {
	event, err := events.DecodeAnalyticsEvent(data)
	if err != nil {
		h.logger.Warn("LiveHandler", "Dropping undecodable live event", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
		return
	}

	frame, err := internalWS.Frame(event)
	if err != nil {
		return
	}
	h.hub.Deliver(frame)
}
