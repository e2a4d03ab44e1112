package implementation

import (
	"context"
	"errors"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/mapper"
	"portfolio-chat-be/internal/model"
	"portfolio-chat-be/internal/repository/contract"
	"portfolio-chat-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) Upsert(ctx context.Context, preference *entity.Preference) error {
	m := r.mapper.ToModel(preference)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "goal", "from_where", "message", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*preference = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Preference, error) {
	var m model.Preference
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PreferenceRepositoryImpl) CountByRole(ctx context.Context) ([]contract.RoleCount, error) {
	var rows []contract.RoleCount
	err := r.db.WithContext(ctx).
		Model(&model.Preference{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
