// Package classifier grades an assistant reply and suggests where the visitor
// could go next. Both are lexical heuristics over the reply text.
package classifier

import (
	"fmt"
	"strings"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
)

// ConfidenceScorer grades a reply as high, medium or low.
type ConfidenceScorer interface {
	Score(text string, usedRetrieval bool) string
}

// LowConfidencePhrases are hedges that mark a reply as low confidence.
var LowConfidencePhrases = []string{
	"i don't have",
	"i'm not sure",
	"not sure",
	"not in my knowledge",
	"don't know",
	"can't answer",
	"outside my scope",
}

// LexicalScorer is the default ConfidenceScorer.
type LexicalScorer struct {
	Phrases []string
}

func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{Phrases: LowConfidencePhrases}
}

func (s *LexicalScorer) Score(text string, usedRetrieval bool) string {
	lower := normalizeApostrophes(strings.ToLower(text))
	for _, phrase := range s.Phrases {
		if strings.Contains(lower, phrase) {
			return constant.ConfidenceLow
		}
	}
	if usedRetrieval {
		return constant.ConfidenceHigh
	}
	return constant.ConfidenceMedium
}

// models often answer with typographic apostrophes
func normalizeApostrophes(s string) string {
	return strings.ReplaceAll(s, "’", "'")
}

type actionGroup struct {
	keywords []string
	action   entity.NextAction
}

var actionGroups = []actionGroup{
	{
		keywords: []string{"project", "built", "work"},
		action:   entity.NextAction{Label: "View Projects", Href: "/projects", Reason: "See detailed project case studies"},
	},
	{
		keywords: []string{"resume", "cv", "experience"},
		action:   entity.NextAction{Label: "View Resume", Href: "/about#resume", Reason: "See full work history"},
	},
	{
		keywords: []string{"contact", "reach", "email"},
		action:   entity.NextAction{Label: "Get in Touch", Href: "/contact", Reason: "Send a message"},
	},
	{
		keywords: []string{"blog", "writing", "article"},
		action:   entity.NextAction{Label: "Read Blog", Href: "/blog", Reason: "Check out the latest posts"},
	},
}

// SuggestActions emits at most one action per matching keyword group, in
// group order. It returns nil when nothing matches.
func SuggestActions(text string) []entity.NextAction {
	lower := strings.ToLower(text)

	var actions []entity.NextAction
	for _, group := range actionGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				actions = append(actions, group.action)
				break
			}
		}
	}
	return actions
}

type Result struct {
	Confidence string
	Actions    []entity.NextAction
}

type Classifier struct {
	scorer ConfidenceScorer
}

// NewClassifier uses the LexicalScorer when scorer is nil.
func NewClassifier(scorer ConfidenceScorer) *Classifier {
	if scorer == nil {
		scorer = NewLexicalScorer()
	}
	return &Classifier{scorer: scorer}
}

func (c *Classifier) Classify(text string, usedRetrieval bool) Result {
	return Result{
		Confidence: c.scorer.Score(text, usedRetrieval),
		Actions:    SuggestActions(text),
	}
}

// Fallback builds the contact notice attached to low confidence replies.
// The type is email when contact looks like an address, otherwise phone.
func Fallback(ownerName, contact string) *entity.Fallback {
	fallbackType := constant.FallbackTypePhone
	if strings.Contains(contact, "@") {
		fallbackType = constant.FallbackTypeEmail
	}
	return &entity.Fallback{
		Type:    fallbackType,
		Message: fmt.Sprintf(constant.FallbackMessageTemplate, ownerName, contact),
	}
}
