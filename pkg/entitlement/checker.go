// Package entitlement answers "does this user hold this capability"
// for the visibility gate and the API handlers.
package entitlement

import (
	"context"

	"civicmap-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Checker resolves capabilities against the user_features/features join.
type Checker struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChecker(uowFactory unitofwork.RepositoryFactory) *Checker {
	return &Checker{
		uowFactory: uowFactory,
	}
}

func (c *Checker) HasFeature(ctx context.Context, userID uuid.UUID, feature string) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.FeatureRepository().UserHasFeature(ctx, userID, feature)
}
