package service

import (
	"context"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/repository/memory"
	"portfolio-chat-be/pkg/analytics"
	"portfolio-chat-be/pkg/chat/mode"
	"portfolio-chat-be/pkg/store"
)

type IPreferenceService interface {
	SavePreference(ctx context.Context, visitorId string, request *dto.SavePreferenceRequest) (*dto.PreferenceResponse, error)
	GetPreference(ctx context.Context, visitorId string) (*dto.PreferenceResponse, error)
}

type preferenceService struct {
	store   store.Store
	cache   *memory.PreferenceCache
	tracker analytics.Tracker
	logger  logger.ILogger
}

func NewPreferenceService(chatStore store.Store, cache *memory.PreferenceCache, tracker analytics.Tracker, log logger.ILogger) IPreferenceService {
	return &preferenceService{
		store:   chatStore,
		cache:   cache,
		tracker: tracker,
		logger:  log,
	}
}

func (ps *preferenceService) SavePreference(ctx context.Context, visitorId string, request *dto.SavePreferenceRequest) (*dto.PreferenceResponse, error) {
	now := time.Now().UTC()
	preference := &entity.Preference{
		VisitorId: visitorId,
		Role:      request.Role,
		Goal:      request.Goal,
		FromWhere: request.FromWhere,
		Message:   request.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := ps.store.UpsertPreference(ctx, preference); err != nil {
		ps.logger.Error("PREFERENCE", "Failed to save preference", map[string]interface{}{
			"visitor_id": visitorId,
			"error":      err.Error(),
		})
		return nil, &dto.StorageError{Op: "saving visitor preferences", Err: err}
	}

	// the next chat turn must see the new mode
	if ps.cache != nil {
		ps.cache.Delete(visitorId)
	}

	if ps.tracker != nil {
		ps.tracker.Track(ctx, &entity.Event{
			VisitorId: visitorId,
			EventName: constant.EventOnboardingCompleted,
			PagePath:  "/",
			Metadata:  map[string]interface{}{"role": request.Role, "goal": request.Goal},
		})
	}

	return toPreferenceResponse(preference), nil
}

// GetPreference returns nil when the visitor has not onboarded.
func (ps *preferenceService) GetPreference(ctx context.Context, visitorId string) (*dto.PreferenceResponse, error) {
	preference, err := ps.store.FindPreference(ctx, visitorId)
	if err != nil {
		return nil, &dto.StorageError{Op: "loading visitor preferences", Err: err}
	}
	if preference == nil {
		return nil, nil
	}
	return toPreferenceResponse(preference), nil
}

func toPreferenceResponse(p *entity.Preference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		Role:      p.Role,
		Goal:      p.Goal,
		FromWhere: p.FromWhere,
		Mode:      mode.FromPreference(p).String(),
		UpdatedAt: p.UpdatedAt,
	}
}
