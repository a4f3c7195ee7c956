package contract

import (
	"context"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MentionRepository interface {
	Create(ctx context.Context, mention *entity.Mention) error
	Update(ctx context.Context, mention *entity.Mention) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mention, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mention, error)
	FindInBounds(ctx context.Context, bounds entity.BoundingBox, limit int) ([]*entity.Mention, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
