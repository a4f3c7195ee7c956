// Repository interface for the capability catalog and user grants
package contract

import (
	"context"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	Update(ctx context.Context, feature *entity.Feature) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error)
	FindByKey(ctx context.Context, key string) (*entity.Feature, error)

	// Grants
	Grant(ctx context.Context, grant *entity.UserFeature) error
	Revoke(ctx context.Context, userId, featureId uuid.UUID) error
	FindGrants(ctx context.Context, userId uuid.UUID) ([]*entity.UserFeature, error)

	// UserHasFeature joins grants against the catalog: true only when an
	// unexpired grant exists for an active feature with the given key.
	UserHasFeature(ctx context.Context, userId uuid.UUID, featureKey string) (bool, error)
}
