package route

import (
	"context"
	"fmt"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"
	"civicmap-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles per-path visibility overrides.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Route, error) {
	return uow.RouteRepository().FindAll(ctx)
}

func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateRouteRequest) (*entity.Route, error) {
	existing, err := uow.RouteRepository().FindOne(ctx, specification.ByPath{Path: req.Path})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("route for path '%s' already exists", req.Path)
	}

	if req.SystemId != nil {
		system, err := uow.SystemRepository().FindOne(ctx, specification.ByID{ID: *req.SystemId})
		if err != nil {
			return nil, err
		}
		if system == nil {
			return nil, fmt.Errorf("system not found")
		}
	}

	route := &entity.Route{
		Path:            req.Path,
		SystemId:        req.SystemId,
		IsVisible:       req.IsVisible,
		RequiresFeature: req.RequiresFeature,
	}

	if err := uow.RouteRepository().Create(ctx, route); err != nil {
		return nil, err
	}

	return route, nil
}

func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, req dto.UpdateRouteRequest) (*entity.Route, error) {
	route, err := uow.RouteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, fmt.Errorf("route not found")
	}

	if req.SystemId != nil {
		route.SystemId = req.SystemId
	}
	if req.IsVisible != nil {
		route.IsVisible = *req.IsVisible
	}
	if req.RequiresFeature != nil {
		route.RequiresFeature = req.RequiresFeature
	}

	if err := uow.RouteRepository().Update(ctx, route); err != nil {
		return nil, err
	}

	return route, nil
}

func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	route, err := uow.RouteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if route == nil {
		return fmt.Errorf("route not found")
	}

	return uow.RouteRepository().Delete(ctx, id)
}
