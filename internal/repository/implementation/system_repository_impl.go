// Implementation of SystemRepository
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

type SystemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SystemMapper
}

func NewSystemRepository(db *gorm.DB) contract.SystemRepository {
	return &SystemRepositoryImpl{
		db:     db,
		mapper: mapper.NewSystemMapper(),
	}
}

func (r *SystemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SystemRepositoryImpl) Create(ctx context.Context, system *entity.System) error {
	m := r.mapper.ToModel(system)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*system = *r.mapper.ToEntity(m)
	return nil
}

func (r *SystemRepositoryImpl) Update(ctx context.Context, system *entity.System) error {
	m := r.mapper.ToModel(system)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*system = *r.mapper.ToEntity(m)
	return nil
}

func (r *SystemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// Routes keep their system_id; the reference is weak on purpose.
	return r.db.WithContext(ctx).Delete(&model.System{}, id).Error
}

func (r *SystemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.System, error) {
	var m model.System
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SystemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.System, error) {
	var models []*model.System
	query := r.applySpecifications(r.db.WithContext(ctx).Order("sort_order ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SystemRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.System, error) {
	var m model.System
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
