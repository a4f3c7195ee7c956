// Service wiring the route visibility gate to the configuration store
package service

import (
	"context"
	"time"

	"civicmap-be/internal/config"
	"civicmap-be/internal/entity"
	"civicmap-be/internal/pkg/logger"
	"civicmap-be/internal/repository/unitofwork"
	"civicmap-be/pkg/gate"

	"github.com/google/uuid"
)

type IVisibilityService interface {
	// IsRouteVisible is called once per inbound page navigation. It never
	// errors; failures collapse into the gate's deny/allow policy.
	IsRouteVisible(ctx context.Context, path string, userID uuid.UUID) bool

	// SystemForRoute supplies the display name for denial messages.
	SystemForRoute(ctx context.Context, path string) *gate.System

	// InvalidateRules drops the local rule cache. Called on admin
	// toggles, locally or via the cross-instance event fanout.
	InvalidateRules()
}

type visibilityService struct {
	gate  *gate.Gate
	rules *gate.CachedRuleSource
}

func NewVisibilityService(
	uowFactory unitofwork.RepositoryFactory,
	entitlements gate.EntitlementChecker,
	cfg *config.Config,
	log logger.ILogger,
) IVisibilityService {
	source := &repoRuleSource{uowFactory: uowFactory}
	cached := gate.NewCachedRuleSource(source, time.Duration(cfg.Gate.RuleCacheTTLSec)*time.Second)

	g := gate.New(cached, entitlements, gate.Options{
		AdminPrefix: cfg.Gate.AdminPrefix,
		DevMode:     cfg.IsDevelopment(),
	}, log)

	return &visibilityService{
		gate:  g,
		rules: cached,
	}
}

func (s *visibilityService) IsRouteVisible(ctx context.Context, path string, userID uuid.UUID) bool {
	return s.gate.IsRouteVisible(ctx, path, userID)
}

func (s *visibilityService) SystemForRoute(ctx context.Context, path string) *gate.System {
	return s.gate.SystemForRoute(ctx, path)
}

func (s *visibilityService) InvalidateRules() {
	s.rules.Invalidate()
}

// repoRuleSource adapts the repository's combined lookup to the gate's
// rule model.
type repoRuleSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func (r *repoRuleSource) RuleForPath(ctx context.Context, path string) (gate.Rule, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	route, system, err := uow.RouteRepository().FindRuleForPath(ctx, path)
	if err != nil {
		return gate.Rule{}, err
	}

	switch {
	case route != nil:
		return gate.Rule{
			Kind: gate.RouteMatch,
			Route: &gate.RouteRule{
				Path:            route.Path,
				IsVisible:       route.IsVisible,
				RequiresFeature: deref(route.RequiresFeature),
				System:          toGateSystem(system),
			},
		}, nil
	case system != nil:
		return gate.Rule{
			Kind:   gate.SystemMatch,
			System: toGateSystem(system),
		}, nil
	default:
		return gate.Rule{Kind: gate.NoRule}, nil
	}
}

func toGateSystem(ent *entity.System) *gate.System {
	if ent == nil {
		return nil
	}
	return &gate.System{
		Id:              ent.Id,
		Key:             ent.Key,
		Name:            ent.Name,
		RoutePrefix:     ent.RoutePrefix,
		IsVisible:       ent.IsVisible,
		IsEnabled:       ent.IsEnabled,
		RequiresFeature: deref(ent.RequiresFeature),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
