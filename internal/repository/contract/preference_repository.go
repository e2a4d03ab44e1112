package contract

import (
	"context"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/repository/specification"
)

type RoleCount struct {
	Role  string
	Count int64
}

type PreferenceRepository interface {
	Upsert(ctx context.Context, preference *entity.Preference) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error)
	CountByRole(ctx context.Context) ([]RoleCount, error)
}
