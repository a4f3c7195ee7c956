// Implementation of MentionRepository
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

type MentionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MentionMapper
}

func NewMentionRepository(db *gorm.DB) contract.MentionRepository {
	return &MentionRepositoryImpl{
		db:     db,
		mapper: mapper.NewMentionMapper(),
	}
}

func (r *MentionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MentionRepositoryImpl) Create(ctx context.Context, mention *entity.Mention) error {
	m := r.mapper.ToModel(mention)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mention = *r.mapper.ToEntity(m)
	return nil
}

func (r *MentionRepositoryImpl) Update(ctx context.Context, mention *entity.Mention) error {
	m := r.mapper.ToModel(mention)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*mention = *r.mapper.ToEntity(m)
	return nil
}

func (r *MentionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Mention{}, id).Error
}

func (r *MentionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mention, error) {
	var m model.Mention
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MentionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mention, error) {
	var models []*model.Mention
	query := r.applySpecifications(r.db.WithContext(ctx).Order("created_at DESC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MentionRepositoryImpl) FindInBounds(ctx context.Context, bounds entity.BoundingBox, limit int) ([]*entity.Mention, error) {
	if limit <= 0 {
		limit = 500
	}
	var models []*model.Mention
	err := r.db.WithContext(ctx).
		Scopes(func(db *gorm.DB) *gorm.DB {
			return specification.InBoundingBox{
				MinLat: bounds.MinLat, MinLng: bounds.MinLng,
				MaxLat: bounds.MaxLat, MaxLng: bounds.MaxLng,
			}.Apply(db)
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MentionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Mention{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
