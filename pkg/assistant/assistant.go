// Package assistant produces the reply to one chat turn from a system
// instruction, the conversation window and the inbound message.
package assistant

import (
	"context"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/chat/prompt"
	"portfolio-chat-be/pkg/llm"
)

type Request struct {
	SystemPrompt string
	History      []llm.Message
	Message      string
}

type Reply struct {
	Text string
	// UsedRetrieval reports whether knowledge base excerpts informed the reply.
	UsedRetrieval bool
}

type Assistant interface {
	Reply(ctx context.Context, req Request) (*Reply, error)
}

type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, question string) ([]*entity.KnowledgeChunk, error)
}

// RetrievalAssistant grounds the LLM on knowledge base excerpts when a
// retriever is configured. Retrieval failures degrade to an ungrounded call.
type RetrievalAssistant struct {
	provider  llm.LLMProvider
	retriever KnowledgeRetriever
	logger    logger.ILogger
}

// NewRetrievalAssistant accepts a nil retriever.
func NewRetrievalAssistant(provider llm.LLMProvider, retriever KnowledgeRetriever, logger logger.ILogger) *RetrievalAssistant {
	return &RetrievalAssistant{
		provider:  provider,
		retriever: retriever,
		logger:    logger,
	}
}

func (a *RetrievalAssistant) Reply(ctx context.Context, req Request) (*Reply, error) {
	system := req.SystemPrompt
	usedRetrieval := false

	if a.retriever != nil {
		hits, err := a.retriever.Retrieve(ctx, req.Message)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.logger.Warn("ASSISTANT", "Knowledge retrieval failed, answering without it", map[string]interface{}{
				"error": err.Error(),
			})
		} else if len(hits) > 0 {
			system = prompt.WithKnowledge(system, hits)
			usedRetrieval = true
		}
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	messages = append(messages, req.History...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	text, err := a.provider.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &Reply{Text: text, UsedRetrieval: usedRetrieval}, nil
}
