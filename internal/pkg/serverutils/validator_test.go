package serverutils

import (
	"strings"
	"testing"

	"portfolio-chat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        interface{}
		wantFields map[string]string
	}{
		{
			name: "valid chat request",
			req:  dto.SendChatRequest{Message: "hello"},
		},
		{
			name:       "missing message",
			req:        dto.SendChatRequest{},
			wantFields: map[string]string{"message": "is required"},
		},
		{
			name: "long message",
			req:  dto.SendChatRequest{Message: strings.Repeat("a", 5000)},
		},
		{
			name: "session id is checked by ownership, not format",
			req:  dto.SendChatRequest{Message: "hi", SessionId: "abc"},
		},
		{
			name:       "event name too long",
			req:        dto.TrackEventRequest{EventName: strings.Repeat("e", 101), PagePath: "/"},
			wantFields: map[string]string{"event_name": "must be at most 100 characters"},
		},
		{
			name:       "event without page path",
			req:        dto.TrackEventRequest{EventName: "resume_clicked"},
			wantFields: map[string]string{"page_path": "is required"},
		},
		{
			name: "unknown role",
			req:  dto.SavePreferenceRequest{Role: "boss", Goal: "contact"},
			wantFields: map[string]string{
				"role": "must be one of: recruiter friends love-interest ex other",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantFields, validationErr.Fields)
		})
	}
}

func TestValidateRequestMessage(t *testing.T) {
	err := ValidateRequest(dto.TrackEventRequest{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid or missing fields: event_name, page_path", validationErr.Message)

	err = ValidateRequest(dto.SendChatRequest{})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "message is required", validationErr.Message)
}
