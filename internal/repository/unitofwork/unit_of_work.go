package unitofwork

import (
	"context"

	"civicmap-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SystemRepository() contract.SystemRepository
	RouteRepository() contract.RouteRepository
	FeatureRepository() contract.FeatureRepository
	MentionRepository() contract.MentionRepository
}
