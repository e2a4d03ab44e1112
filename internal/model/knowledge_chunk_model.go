package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type KnowledgeChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Source     string          `gorm:"type:varchar(255);not null;index"`
	ChunkIndex int             `gorm:"default:0"`
	Content    string          `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}

// KnowledgeChunkHit is a search row carrying the computed cosine similarity.
type KnowledgeChunkHit struct {
	KnowledgeChunk
	Similarity float64
}
