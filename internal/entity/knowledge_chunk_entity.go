package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeChunk struct {
	Id         uuid.UUID
	Source     string
	ChunkIndex int
	Content    string
	Embedding  []float32
	Similarity float64
	CreatedAt  time.Time
}
