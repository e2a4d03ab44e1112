package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"

	FallbackTypePhone = "phone"
	FallbackTypeEmail = "email"

	// ChatPagePath is the page_path recorded on chat analytics events.
	ChatPagePath = "/chat"

	VisitorIdLocalKey = "visitor_id"
)

// Analytics event names
const (
	EventChatMessageSent         = "chat_message_sent"
	EventChatResponseReceived    = "chat_response_received"
	EventChatFallbackPhoneShared = "chat_fallback_phone_shared"
	EventOnboardingCompleted     = "onboarding_completed"
	EventResumeClicked           = "resume_clicked"
	EventContactClicked          = "contact_clicked"
)

// FunnelEvents are the dashboard funnel steps, in order.
var FunnelEvents = []string{
	EventOnboardingCompleted,
	EventResumeClicked,
	EventContactClicked,
}
