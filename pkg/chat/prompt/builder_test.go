package prompt

import (
	"strings"
	"testing"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/chat/mode"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	b := NewBuilder("Frank")

	t.Run("recruiter voice with visitor context", func(t *testing.T) {
		got := b.Build(mode.Recruiter, &entity.Preference{Role: "recruiter", Goal: "view-resume", FromWhere: "linkedin"})
		assert.Contains(t, got, "Frank")
		assert.Contains(t, got, constant.RecruiterVoicePrompt)
		assert.NotContains(t, got, constant.CasualVoicePrompt)
		assert.Contains(t, got, "- Goal: view-resume")
		assert.Contains(t, got, "- Found via: linkedin")
	})

	t.Run("casual voice without preference", func(t *testing.T) {
		got := b.Build(mode.Casual, nil)
		assert.Contains(t, got, constant.CasualVoicePrompt)
		assert.NotContains(t, got, constant.VisitorContextHeader)
	})
}

func TestWithKnowledge(t *testing.T) {
	assert.Equal(t, "base", WithKnowledge("base", nil))

	got := WithKnowledge("base", []*entity.KnowledgeChunk{
		{Source: "projects/chat.md", Content: "  A chat backend.  "},
		{Source: "about.md", Content: "Lives in Lisbon."},
	})
	assert.True(t, strings.HasPrefix(got, "base"))
	assert.Contains(t, got, "[1] (projects/chat.md)\nA chat backend.")
	assert.Contains(t, got, "[2] (about.md)")
}
