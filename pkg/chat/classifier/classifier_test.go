package classifier

import (
	"testing"

	"portfolio-chat-be/internal/constant"

	"github.com/stretchr/testify/assert"
)

func TestLexicalScorer(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		usedRetrieval bool
		want          string
	}{
		{"hedge phrase", "I don't have details on that.", true, constant.ConfidenceLow},
		{"case insensitive", "I'M NOT SURE about that", false, constant.ConfidenceLow},
		{"typographic apostrophe", "I don’t know, honestly", true, constant.ConfidenceLow},
		{"outside scope", "That is outside my scope.", false, constant.ConfidenceLow},
		{"grounded answer", "Frank built a chat backend in Go.", true, constant.ConfidenceHigh},
		{"ungrounded answer", "Frank built a chat backend in Go.", false, constant.ConfidenceMedium},
	}

	s := NewLexicalScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.text, tt.usedRetrieval))
		})
	}
}

func TestSuggestActions(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		labels []string
	}{
		{"nothing", "Hello there!", nil},
		{"projects once", "He built it as a project at work", []string{"View Projects"}},
		{"order follows groups", "Read the blog, email him, or see his resume", []string{"View Resume", "Get in Touch", "Read Blog"}},
		{"all four", "project resume contact article", []string{"View Projects", "View Resume", "Get in Touch", "Read Blog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := SuggestActions(tt.text)
			if tt.labels == nil {
				assert.Nil(t, actions)
				return
			}
			var labels []string
			for _, a := range actions {
				labels = append(labels, a.Label)
			}
			assert.Equal(t, tt.labels, labels)
		})
	}

	actions := SuggestActions("see my resume")
	assert.Equal(t, "/about#resume", actions[0].Href)
	assert.Equal(t, "See full work history", actions[0].Reason)
}

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	r := c.Classify("I'm not sure, but his projects page has more.", true)
	assert.Equal(t, constant.ConfidenceLow, r.Confidence)
	assert.Len(t, r.Actions, 1)
}

func TestFallback(t *testing.T) {
	phone := Fallback("Frank", "+1 555 0100")
	assert.Equal(t, constant.FallbackTypePhone, phone.Type)
	assert.Equal(t, "I don't have enough info on that. Frank can help! Reach out at +1 555 0100", phone.Message)

	email := Fallback("Frank", "frank@example.com")
	assert.Equal(t, constant.FallbackTypeEmail, email.Type)
}
