package database

import (
	"fmt"

	"portfolio-chat-be/internal/model"

	"gorm.io/gorm"
)

// CoreModels are the tables every store driver backed by gorm needs.
func CoreModels() []interface{} {
	return []interface{}{
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Event{},
		&model.Preference{},
	}
}

// Migrate creates or updates the schema. withVectors also enables the pgvector
// extension and the knowledge_chunks table, which only Postgres supports.
func Migrate(db *gorm.DB, withVectors bool) error {
	models := CoreModels()

	if withVectors {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to enable vector extension: %w", err)
		}
		models = append(models, &model.KnowledgeChunk{})
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
