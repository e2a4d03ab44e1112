package mapper

import (
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.Preference) *entity.Preference {
	if p == nil {
		return nil
	}
	return &entity.Preference{
		VisitorId: p.VisitorId,
		Role:      p.Role,
		Goal:      p.Goal,
		FromWhere: p.FromWhere,
		Message:   p.Message,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.Preference) *model.Preference {
	if p == nil {
		return nil
	}
	return &model.Preference{
		VisitorId: p.VisitorId,
		Role:      p.Role,
		Goal:      p.Goal,
		FromWhere: p.FromWhere,
		Message:   p.Message,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
