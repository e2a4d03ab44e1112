package contract

import (
	"context"

	"portfolio-chat-be/internal/entity"
)

type KnowledgeChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	DeleteBySource(ctx context.Context, source string) error
	// SearchSimilar returns up to limit chunks with cosine similarity >= threshold, best first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.KnowledgeChunk, error)
}
