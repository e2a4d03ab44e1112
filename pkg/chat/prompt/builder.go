package prompt

import (
	"fmt"
	"strings"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/chat/mode"
)

// Builder assembles the system instruction for the assistant.
type Builder struct {
	ownerName string
}

func NewBuilder(ownerName string) *Builder {
	if ownerName == "" {
		ownerName = "the site owner"
	}
	return &Builder{ownerName: ownerName}
}

// Build returns base rules, then the voice for m, then the visitor context
// when a preference is known.
func (b *Builder) Build(m mode.Mode, preference *entity.Preference) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(constant.AssistantBasePrompt, b.ownerName))

	if m == mode.Recruiter {
		sb.WriteString(constant.RecruiterVoicePrompt)
	} else {
		sb.WriteString(constant.CasualVoicePrompt)
	}

	if preference != nil {
		sb.WriteString(constant.VisitorContextHeader)
		sb.WriteString(fmt.Sprintf("- Role: %s\n", preference.Role))
		sb.WriteString(fmt.Sprintf("- Goal: %s\n", preference.Goal))
		if preference.FromWhere != "" {
			sb.WriteString(fmt.Sprintf("- Found via: %s\n", preference.FromWhere))
		}
		sb.WriteString(constant.VisitorContextFooter)
	}

	return sb.String()
}

// WithKnowledge appends retrieved excerpts to a system instruction.
func WithKnowledge(system string, excerpts []*entity.KnowledgeChunk) string {
	if len(excerpts) == 0 {
		return system
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString(constant.KnowledgeContextHeader)
	for i, c := range excerpts {
		sb.WriteString(fmt.Sprintf("[%d] (%s)\n%s\n\n", i+1, c.Source, strings.TrimSpace(c.Content)))
	}
	return sb.String()
}
