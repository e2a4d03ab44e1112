package knowledge

import (
	"context"
	"fmt"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/embedding"
)

const (
	DefaultTopK      = 4
	DefaultThreshold = 0.55
)

type ChunkSearcher interface {
	SearchSimilar(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.KnowledgeChunk, error)
}

// Retriever finds knowledge base excerpts relevant to a question.
type Retriever struct {
	embedder  embedding.EmbeddingProvider
	chunks    ChunkSearcher
	topK      int
	threshold float64
}

func NewRetriever(embedder embedding.EmbeddingProvider, chunks ChunkSearcher, topK int, threshold float64) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Retriever{
		embedder:  embedder,
		chunks:    chunks,
		topK:      topK,
		threshold: threshold,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, question string) ([]*entity.KnowledgeChunk, error) {
	emb, err := r.embedder.Generate(ctx, question, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := r.chunks.SearchSimilar(ctx, emb.Embedding.Values, r.topK, r.threshold)
	if err != nil {
		return nil, fmt.Errorf("search knowledge chunks: %w", err)
	}
	return hits, nil
}
