package service

import (
	"context"

	"civicmap-be/internal/dto"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/unitofwork"
	adminEvents "civicmap-be/pkg/admin/events"
	"civicmap-be/pkg/admin/feature"
	"civicmap-be/pkg/admin/route"
	"civicmap-be/pkg/admin/system"
	"civicmap-be/pkg/entitlement"
	"civicmap-be/pkg/events"

	"github.com/google/uuid"
)

// ToggleBroadcaster tells connected clients a feature area changed
// state. The websocket hub implements it; nil is a no-op.
type ToggleBroadcaster interface {
	BroadcastSystemToggled(systemKey string, isVisible, isEnabled bool)
}

type IAdminService interface {
	// Systems
	GetAllSystems(ctx context.Context) ([]*entity.System, error)
	CreateSystem(ctx context.Context, req dto.CreateSystemRequest) (*entity.System, error)
	UpdateSystem(ctx context.Context, id uuid.UUID, req dto.UpdateSystemRequest) (*entity.System, error)
	DeleteSystem(ctx context.Context, id uuid.UUID) error

	// Routes
	GetAllRoutes(ctx context.Context) ([]*entity.Route, error)
	CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*entity.Route, error)
	UpdateRoute(ctx context.Context, id uuid.UUID, req dto.UpdateRouteRequest) (*entity.Route, error)
	DeleteRoute(ctx context.Context, id uuid.UUID) error

	// Capability catalog
	GetAllFeatures(ctx context.Context) ([]*entity.Feature, error)
	CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*entity.Feature, error)
	UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*entity.Feature, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) error
	GrantFeature(ctx context.Context, req dto.GrantFeatureRequest) (*entity.UserFeature, error)
	RevokeFeature(ctx context.Context, userId, featureId uuid.UUID) error
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	systemManager  *system.Manager
	routeManager   *route.Manager
	featureManager *feature.Manager
	publisher      adminEvents.Publisher
	visibility     IVisibilityService
	entitlements   *entitlement.CachedChecker
	broadcaster    ToggleBroadcaster
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	systemManager *system.Manager,
	routeManager *route.Manager,
	featureManager *feature.Manager,
	publisher adminEvents.Publisher,
	visibility IVisibilityService,
	entitlements *entitlement.CachedChecker,
	broadcaster ToggleBroadcaster,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		systemManager:  systemManager,
		routeManager:   routeManager,
		featureManager: featureManager,
		publisher:      publisher,
		visibility:     visibility,
		entitlements:   entitlements,
		broadcaster:    broadcaster,
	}
}

// ruleConfigChanged runs after every mutation of the visibility rules:
// the local cache drops immediately, other instances hear it on the bus.
func (s *adminService) ruleConfigChanged(ctx context.Context, event events.Event) {
	s.visibility.InvalidateRules()
	s.publisher.Publish(ctx, event)
}

// --- Systems ---

func (s *adminService) GetAllSystems(ctx context.Context) ([]*entity.System, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.systemManager.GetAll(ctx, uow)
}

func (s *adminService) CreateSystem(ctx context.Context, req dto.CreateSystemRequest) (*entity.System, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sys, err := s.systemManager.Create(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	s.ruleConfigChanged(ctx, events.NewSystemToggled(sys.Key, sys.IsVisible, sys.IsEnabled))
	s.notifyToggle(sys)
	return sys, nil
}

func (s *adminService) UpdateSystem(ctx context.Context, id uuid.UUID, req dto.UpdateSystemRequest) (*entity.System, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sys, err := s.systemManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}
	s.ruleConfigChanged(ctx, events.NewSystemToggled(sys.Key, sys.IsVisible, sys.IsEnabled))
	s.notifyToggle(sys)
	return sys, nil
}

func (s *adminService) notifyToggle(sys *entity.System) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastSystemToggled(sys.Key, sys.IsVisible, sys.IsEnabled)
	}
}

func (s *adminService) DeleteSystem(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.systemManager.Delete(ctx, uow, id); err != nil {
		return err
	}
	s.ruleConfigChanged(ctx, events.NewSystemToggled(id.String(), false, false))
	return nil
}

// --- Routes ---

func (s *adminService) GetAllRoutes(ctx context.Context) ([]*entity.Route, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.routeManager.GetAll(ctx, uow)
}

func (s *adminService) CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*entity.Route, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rt, err := s.routeManager.Create(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	s.ruleConfigChanged(ctx, events.NewRouteToggled(rt.Path, rt.IsVisible))
	return rt, nil
}

func (s *adminService) UpdateRoute(ctx context.Context, id uuid.UUID, req dto.UpdateRouteRequest) (*entity.Route, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rt, err := s.routeManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}
	s.ruleConfigChanged(ctx, events.NewRouteToggled(rt.Path, rt.IsVisible))
	return rt, nil
}

func (s *adminService) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.routeManager.Delete(ctx, uow, id); err != nil {
		return err
	}
	s.ruleConfigChanged(ctx, events.NewRouteToggled(id.String(), false))
	return nil
}

// --- Capability catalog ---

func (s *adminService) GetAllFeatures(ctx context.Context) ([]*entity.Feature, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.GetAll(ctx, uow)
}

func (s *adminService) CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*entity.Feature, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.Create(ctx, uow, req)
}

func (s *adminService) UpdateFeature(ctx context.Context, id uuid.UUID, req dto.UpdateFeatureRequest) (*entity.Feature, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	feat, err := s.featureManager.Update(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.NewFeatureChanged(feat.Key))
	return feat, nil
}

func (s *adminService) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.Delete(ctx, uow, id)
}

func (s *adminService) GrantFeature(ctx context.Context, req dto.GrantFeatureRequest) (*entity.UserFeature, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	grant, err := s.featureManager.Grant(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	if s.entitlements != nil {
		s.entitlements.InvalidateUser(req.UserId)
	}
	return grant, nil
}

func (s *adminService) RevokeFeature(ctx context.Context, userId, featureId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.featureManager.Revoke(ctx, uow, userId, featureId); err != nil {
		return err
	}
	if s.entitlements != nil {
		s.entitlements.InvalidateUser(userId)
	}
	return nil
}
