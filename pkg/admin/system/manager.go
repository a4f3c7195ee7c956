package system

import (
	"context"
	"fmt"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"
	"civicmap-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles the system catalog: the feature areas whose
// visibility/enablement flags drive the route gate.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.System, error) {
	return uow.SystemRepository().FindAll(ctx)
}

func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateSystemRequest) (*entity.System, error) {
	existing, err := uow.SystemRepository().FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("system with key '%s' already exists", req.Key)
	}

	system := &entity.System{
		Key:             req.Key,
		Name:            req.Name,
		RoutePrefix:     req.RoutePrefix,
		IsVisible:       req.IsVisible,
		IsEnabled:       req.IsEnabled,
		RequiresFeature: req.RequiresFeature,
		Metadata:        req.Metadata,
		SortOrder:       req.SortOrder,
	}

	if err := uow.SystemRepository().Create(ctx, system); err != nil {
		return nil, err
	}

	return system, nil
}

func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateSystemRequest) (*entity.System, error) {
	system, err := uow.SystemRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if system == nil {
		return nil, fmt.Errorf("system not found")
	}

	if req.Name != nil {
		system.Name = *req.Name
	}
	if req.RoutePrefix != nil {
		system.RoutePrefix = *req.RoutePrefix
	}
	if req.IsVisible != nil {
		system.IsVisible = *req.IsVisible
	}
	if req.IsEnabled != nil {
		system.IsEnabled = *req.IsEnabled
	}
	if req.RequiresFeature != nil {
		system.RequiresFeature = req.RequiresFeature
	}
	if req.Metadata != nil {
		system.Metadata = req.Metadata
	}
	if req.SortOrder != nil {
		system.SortOrder = *req.SortOrder
	}

	if err := uow.SystemRepository().Update(ctx, system); err != nil {
		return nil, err
	}

	return system, nil
}

// Delete removes the system row only. Routes referencing it keep their
// system_id and fall back to their own visibility flag.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	system, err := uow.SystemRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if system == nil {
		return fmt.Errorf("system not found")
	}

	return uow.SystemRepository().Delete(ctx, id)
}
