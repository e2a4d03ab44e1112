package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	tasks []string
	err   error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, taskType)
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{float32(len(text)), 1}},
	}, nil
}

type memoryChunks struct {
	deleted []string
	saved   []*entity.KnowledgeChunk

	searchLimit     int
	searchThreshold float64
}

func (m *memoryChunks) DeleteBySource(ctx context.Context, source string) error {
	m.deleted = append(m.deleted, source)
	return nil
}

func (m *memoryChunks) CreateBatch(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	m.saved = append(m.saved, chunks...)
	return nil
}

func (m *memoryChunks) SearchSimilar(ctx context.Context, emb []float32, limit int, threshold float64) ([]*entity.KnowledgeChunk, error) {
	m.searchLimit = limit
	m.searchThreshold = threshold
	return m.saved, nil
}

func TestIngest(t *testing.T) {
	embedder := &fakeEmbedder{}
	chunks := &memoryChunks{}
	ingester := NewIngester(embedder, chunks)

	doc := "---\ntitle: Ledger\n---\n" + strings.Repeat("Ledger reconciles payments in Go. ", 80)
	n, err := ingester.Ingest(context.Background(), "projects/ledger.md", doc)
	require.NoError(t, err)

	require.Greater(t, n, 1)
	assert.Len(t, chunks.saved, n)
	assert.Equal(t, []string{"projects/ledger.md"}, chunks.deleted)
	for i, c := range chunks.saved {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, "projects/ledger.md", c.Source)
		assert.NotContains(t, c.Content, "title: Ledger")
		assert.Len(t, c.Embedding, 2)
	}
	for _, task := range embedder.tasks {
		assert.Equal(t, embedding.TaskRetrievalDocument, task)
	}
}

func TestIngestEmptyDocument(t *testing.T) {
	chunks := &memoryChunks{}
	n, err := NewIngester(&fakeEmbedder{}, chunks).Ingest(context.Background(), "empty.md", "---\ntitle: x\n---\n")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, chunks.deleted)
}

func TestIngestKeepsOldChunksOnEmbedFailure(t *testing.T) {
	chunks := &memoryChunks{}
	_, err := NewIngester(&fakeEmbedder{err: errors.New("ollama down")}, chunks).Ingest(context.Background(), "a.md", "some text")
	require.Error(t, err)
	assert.Empty(t, chunks.deleted)
}

func TestRetrieve(t *testing.T) {
	embedder := &fakeEmbedder{}
	chunks := &memoryChunks{saved: []*entity.KnowledgeChunk{{Source: "a.md", Content: "x"}}}

	hits, err := NewRetriever(embedder, chunks, 0, 0).Retrieve(context.Background(), "what is x?")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, DefaultTopK, chunks.searchLimit)
	assert.Equal(t, DefaultThreshold, chunks.searchThreshold)
	assert.Equal(t, []string{embedding.TaskRetrievalQuery}, embedder.tasks)

	_, err = NewRetriever(&fakeEmbedder{err: errors.New("boom")}, chunks, 2, 0.7).Retrieve(context.Background(), "q")
	assert.Error(t, err)
}
