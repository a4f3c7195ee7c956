// Repository interfaces for the visibility configuration store
package contract

import (
	"context"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SystemRepository interface {
	Create(ctx context.Context, system *entity.System) error
	Update(ctx context.Context, system *entity.System) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.System, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.System, error)
	FindByKey(ctx context.Context, key string) (*entity.System, error)
}

type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	Update(ctx context.Context, route *entity.Route) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Route, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Route, error)

	// FindRuleForPath resolves the visibility rule covering path in one
	// round trip: the explicit route row with its owning system when one
	// exists, otherwise the system whose route prefix covers the path.
	// All-nil return means the path is uncovered. A route with a
	// dangling system reference comes back with a nil system.
	FindRuleForPath(ctx context.Context, path string) (*entity.Route, *entity.System, error)
}
