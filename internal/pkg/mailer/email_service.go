// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

// FallbackAlert tells the site owner a visitor got the contact fallback
// because the assistant could not answer.
type FallbackAlert struct {
	VisitorId  string
	SessionId  string
	Question   string
	OccurredAt time.Time
}

type IEmailService interface {
	SendFallbackAlert(toEmail string, alert FallbackAlert) error
}

// Sender is the part of gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender      Sender
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return NewEmailServiceWithSender(gomail.NewDialer(host, port, username, password), senderEmail, senderName)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName string) IEmailService {
	return &emailService{
		sender:      sender,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendFallbackAlert(toEmail string, alert FallbackAlert) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "A visitor needs a human answer")

	question := alert.Question
	if question == "" {
		question = "(not recorded)"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>The assistant handed a visitor your contact details</h2>
			<p><strong>Question:</strong></p>
			<blockquote style="border-left: 3px solid #ccc; padding-left: 10px;">%s</blockquote>
			<p>Visitor: %s<br/>Session: %s<br/>At: %s</p>
		</div>
	`,
		html.EscapeString(question),
		html.EscapeString(alert.VisitorId),
		html.EscapeString(alert.SessionId),
		alert.OccurredAt.UTC().Format(time.RFC1123),
	)

	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("sending fallback alert to %s: %w", toEmail, err)
	}
	return nil
}
