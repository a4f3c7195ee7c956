package feature

import (
	"context"
	"fmt"
	"time"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"
	"civicmap-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles the capability catalog and user grants.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Feature, error) {
	return uow.FeatureRepository().FindAll(ctx)
}

func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateFeatureRequest) (*entity.Feature, error) {
	existing, err := uow.FeatureRepository().FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("feature with key '%s' already exists", req.Key)
	}

	feature := &entity.Feature{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}

	if err := uow.FeatureRepository().Create(ctx, feature); err != nil {
		return nil, err
	}

	return feature, nil
}

func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateFeatureRequest) (*entity.Feature, error) {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("feature not found")
	}

	if req.Name != nil {
		feature.Name = *req.Name
	}
	if req.Description != nil {
		feature.Description = *req.Description
	}
	if req.IsActive != nil {
		feature.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		feature.SortOrder = *req.SortOrder
	}

	if err := uow.FeatureRepository().Update(ctx, feature); err != nil {
		return nil, err
	}

	return feature, nil
}

func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if feature == nil {
		return fmt.Errorf("feature not found")
	}

	return uow.FeatureRepository().Delete(ctx, id)
}

func (m *Manager) Grant(ctx context.Context, uow unitofwork.UnitOfWork, req dto.GrantFeatureRequest) (*entity.UserFeature, error) {
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: req.FeatureId})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("feature not found")
	}

	grant := &entity.UserFeature{
		UserId:    req.UserId,
		FeatureId: req.FeatureId,
	}
	if req.ExpiresAt != nil {
		expires, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expires_at: %w", err)
		}
		grant.ExpiresAt = &expires
	}

	if err := uow.FeatureRepository().Grant(ctx, grant); err != nil {
		return nil, err
	}

	return grant, nil
}

func (m *Manager) Revoke(ctx context.Context, uow unitofwork.UnitOfWork, userId, featureId uuid.UUID) error {
	return uow.FeatureRepository().Revoke(ctx, userId, featureId)
}
