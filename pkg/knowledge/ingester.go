package knowledge

import (
	"context"
	"fmt"
	"time"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/embedding"
	"portfolio-chat-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 150
)

type ChunkWriter interface {
	DeleteBySource(ctx context.Context, source string) error
	CreateBatch(ctx context.Context, chunks []*entity.KnowledgeChunk) error
}

// Ingester turns markdown documents into embedded knowledge chunks.
type Ingester struct {
	embedder  embedding.EmbeddingProvider
	chunks    ChunkWriter
	chunkSize int
	overlap   int
}

func NewIngester(embedder embedding.EmbeddingProvider, chunks ChunkWriter) *Ingester {
	return &Ingester{
		embedder:  embedder,
		chunks:    chunks,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
}

// Ingest replaces every chunk of source with freshly embedded chunks of
// content. It returns the number of chunks written.
func (i *Ingester) Ingest(ctx context.Context, source, content string) (int, error) {
	parts := utils.SplitText(utils.StripFrontmatter(content), i.chunkSize, i.overlap)
	if len(parts) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	chunks := make([]*entity.KnowledgeChunk, 0, len(parts))
	for idx, part := range parts {
		emb, err := i.embedder.Generate(ctx, part, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %s: %w", idx, source, err)
		}
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:         uuid.New(),
			Source:     source,
			ChunkIndex: idx,
			Content:    part,
			Embedding:  emb.Embedding.Values,
			CreatedAt:  now,
		})
	}

	if err := i.chunks.DeleteBySource(ctx, source); err != nil {
		return 0, fmt.Errorf("clear old chunks of %s: %w", source, err)
	}
	if err := i.chunks.CreateBatch(ctx, chunks); err != nil {
		return 0, fmt.Errorf("save chunks of %s: %w", source, err)
	}
	return len(chunks), nil
}
