package implementation

import (
	"context"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/mapper"
	"portfolio-chat-be/internal/model"
	"portfolio-chat-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *KnowledgeChunkRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	return r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.KnowledgeChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	// pgvector cosine distance is 1 - cosine_similarity
	queryVector := pgvector.NewVector(embedding)

	var hits []*model.KnowledgeChunkHit
	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(limit).
		Scan(&hits).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.KnowledgeChunk, len(hits))
	for i, h := range hits {
		chunks[i] = r.mapper.HitToEntity(h)
	}
	return chunks, nil
}
