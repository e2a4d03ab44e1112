package store

import (
	"context"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/repository/specification"
	"portfolio-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// GormStore implements Store over the repository unit of work.
type GormStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGormStore(uowFactory unitofwork.RepositoryFactory) *GormStore {
	return &GormStore{uowFactory: uowFactory}
}

func (s *GormStore) ListUserMessageTimes(ctx context.Context, visitorId string, since time.Time) ([]time.Time, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByVisitorID{VisitorID: visitorId},
		specification.ByMessageRole{Role: constant.ChatMessageRoleUser},
		specification.CreatedSince{Since: since},
	)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, len(messages))
	for i, m := range messages {
		times[i] = m.CreatedAt
	}
	return times, nil
}

func (s *GormStore) CreateSession(ctx context.Context, visitorId string, now time.Time) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.ChatSession{
		Id:        uuid.New(),
		VisitorId: visitorId,
		CreatedAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *GormStore) FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *GormStore) RecentMessages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 {
		return []*entity.ChatMessage{}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	return NewestFirstToOldestFirst(messages), nil
}

func (s *GormStore) AppendMessages(ctx context.Context, messages ...*entity.ChatMessage) error {
	if len(messages) == 0 {
		return ErrEmptyBatch
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			uow.Rollback()
			panic(r)
		}
	}()

	for _, m := range messages {
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
		if err := uow.ChatMessageRepository().Create(ctx, m); err != nil {
			uow.Rollback()
			return err
		}
	}

	return uow.Commit()
}

func (s *GormStore) FindPreference(ctx context.Context, visitorId string) (*entity.Preference, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PreferenceRepository().FindOne(ctx, specification.ByVisitorID{VisitorID: visitorId})
}

func (s *GormStore) UpsertPreference(ctx context.Context, preference *entity.Preference) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PreferenceRepository().Upsert(ctx, preference)
}

func (s *GormStore) InsertEvents(ctx context.Context, events ...*entity.Event) error {
	for _, e := range events {
		if e.Id == uuid.Nil {
			e.Id = uuid.New()
		}
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EventRepository().CreateBatch(ctx, events)
}
