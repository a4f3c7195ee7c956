// Implementation of RouteRepository
package implementation

import (
	"context"
	"errors"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/mapper"
	"civicmap-be/internal/model"
	"civicmap-be/internal/repository/contract"
	"civicmap-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteRepositoryImpl struct {
	db        *gorm.DB
	mapper    *mapper.RouteMapper
	sysMapper *mapper.SystemMapper
}

func NewRouteRepository(db *gorm.DB) contract.RouteRepository {
	return &RouteRepositoryImpl{
		db:        db,
		mapper:    mapper.NewRouteMapper(),
		sysMapper: mapper.NewSystemMapper(),
	}
}

func (r *RouteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RouteRepositoryImpl) Create(ctx context.Context, route *entity.Route) error {
	m := r.mapper.ToModel(route)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*route = *r.mapper.ToEntity(m)
	return nil
}

func (r *RouteRepositoryImpl) Update(ctx context.Context, route *entity.Route) error {
	m := r.mapper.ToModel(route)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*route = *r.mapper.ToEntity(m)
	return nil
}

func (r *RouteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Route{}, id).Error
}

func (r *RouteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Route, error) {
	var m model.Route
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RouteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Route, error) {
	var models []*model.Route
	query := r.applySpecifications(r.db.WithContext(ctx).Order("path ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// FindRuleForPath is the hot-path lookup behind the visibility gate.
// An explicit route row wins; its owning system rides along on a single
// LEFT JOIN, so a route match costs one query. Only when no route row
// exists does the system-prefix fallback run.
func (r *RouteRepositoryImpl) FindRuleForPath(ctx context.Context, path string) (*entity.Route, *entity.System, error) {
	var m model.Route
	err := r.db.WithContext(ctx).
		Joins("System").
		Where("routes.path = ?", path).
		First(&m).Error
	if err == nil {
		var sys *entity.System
		// A dangling system_id leaves m.System zero-valued; only a
		// joined row with a real id counts as an owning system.
		if m.System != nil && m.System.Id != uuid.Nil {
			sys = r.sysMapper.ToEntity(m.System)
		}
		return r.mapper.ToEntity(&m), sys, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var s model.System
	err = r.db.WithContext(ctx).
		Where("? LIKE route_prefix || '%'", path).
		Order("length(route_prefix) DESC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return nil, r.sysMapper.ToEntity(&s), nil
}
