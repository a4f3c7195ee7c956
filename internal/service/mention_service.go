package service

import (
	"context"
	"errors"
	"time"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"
	"civicmap-be/internal/repository/unitofwork"
	adminEvents "civicmap-be/pkg/admin/events"
	"civicmap-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrMentionNotFound = errors.New("mention not found")
	ErrNotMentionOwner = errors.New("mention belongs to another user")
)

// MentionBroadcaster pushes newly created pins to connected map clients.
// The websocket hub implements it; a nil broadcaster is a no-op.
type MentionBroadcaster interface {
	BroadcastMentionCreated(mention *entity.Mention)
}

type IMentionService interface {
	Create(ctx context.Context, userId uuid.UUID, req dto.CreateMentionRequest) (*entity.Mention, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Mention, error)
	GetInBounds(ctx context.Context, bounds entity.BoundingBox, limit int) ([]*entity.Mention, error)
	GetByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Mention, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type mentionService struct {
	uowFactory  unitofwork.RepositoryFactory
	publisher   adminEvents.Publisher
	broadcaster MentionBroadcaster
}

func NewMentionService(uowFactory unitofwork.RepositoryFactory, publisher adminEvents.Publisher, broadcaster MentionBroadcaster) IMentionService {
	return &mentionService{
		uowFactory:  uowFactory,
		publisher:   publisher,
		broadcaster: broadcaster,
	}
}

const defaultBoundsLimit = 500

func (s *mentionService) Create(ctx context.Context, userId uuid.UUID, req dto.CreateMentionRequest) (*entity.Mention, error) {
	mention := &entity.Mention{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Body:      req.Body,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for _, m := range req.Media {
		mention.Media = append(mention.Media, entity.MentionMedia{
			URL:         m.URL,
			ContentType: m.ContentType,
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MentionRepository().Create(ctx, mention); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewMentionCreated(mention.Id.String(), mention.Latitude, mention.Longitude))
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMentionCreated(mention)
	}
	return mention, nil
}

func (s *mentionService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Mention, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	mention, err := uow.MentionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if mention == nil {
		return nil, ErrMentionNotFound
	}
	return mention, nil
}

func (s *mentionService) GetInBounds(ctx context.Context, bounds entity.BoundingBox, limit int) ([]*entity.Mention, error) {
	if limit <= 0 || limit > defaultBoundsLimit {
		limit = defaultBoundsLimit
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MentionRepository().FindInBounds(ctx, bounds, limit)
}

func (s *mentionService) GetByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Mention, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MentionRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId}, specification.OrderBy{Field: "created_at", Desc: true})
}

func (s *mentionService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	mention, err := uow.MentionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if mention == nil {
		return ErrMentionNotFound
	}
	if mention.UserId != userId {
		return ErrNotMentionOwner
	}
	return uow.MentionRepository().Delete(ctx, id)
}
