package implementation

import (
	"context"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/mapper"
	"portfolio-chat-be/internal/model"
	"portfolio-chat-be/internal/repository/contract"
	"portfolio-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type EventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EventMapper
}

func NewEventRepository(db *gorm.DB) contract.EventRepository {
	return &EventRepositoryImpl{
		db:     db,
		mapper: mapper.NewEventMapper(),
	}
}

func (r *EventRepositoryImpl) CreateBatch(ctx context.Context, events []*entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*model.Event, len(events))
	for i, e := range events {
		models[i] = r.mapper.ToModel(e)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *EventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error) {
	var models []*model.Event
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Event{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EventRepositoryImpl) CountDistinctVisitors(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Event{}), specs...)
	err := query.
		Where("visitor_id <> ''").
		Distinct("visitor_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EventRepositoryImpl) CountDistinctVisitorsByEventName(ctx context.Context, specs ...specification.Specification) ([]contract.EventNameCount, error) {
	var rows []contract.EventNameCount
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Event{}), specs...)
	err := query.
		Select("event_name, COUNT(DISTINCT visitor_id) AS count").
		Where("visitor_id <> ''").
		Group("event_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventRepositoryImpl) CountDistinctVisitorsByRole(ctx context.Context, eventNames []string) ([]contract.RoleEventCount, error) {
	var rows []contract.RoleEventCount
	err := r.db.WithContext(ctx).
		Table("events").
		Select("preferences.role AS role, events.event_name AS event_name, COUNT(DISTINCT events.visitor_id) AS count").
		Joins("JOIN preferences ON preferences.visitor_id = events.visitor_id").
		Where("events.event_name IN ?", eventNames).
		Group("preferences.role, events.event_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
