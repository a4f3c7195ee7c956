// Implementation of FeatureRepository
package implementation

import (
	"context"
	"errors"
	"time"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/mapper"
	"civicmap-be/internal/model"
	"civicmap-be/internal/repository/contract"
	"civicmap-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureMapper
}

func NewFeatureRepository(db *gorm.DB) contract.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureMapper(),
	}
}

func (r *FeatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) Update(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Feature{}, id).Error
}

func (r *FeatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	var m model.Feature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	var models []*model.Feature
	query := r.applySpecifications(r.db.WithContext(ctx).Order("sort_order ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.Feature, error) {
	var m model.Feature
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureRepositoryImpl) Grant(ctx context.Context, grant *entity.UserFeature) error {
	m := r.mapper.GrantToModel(grant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*grant = *r.mapper.GrantToEntity(m)
	return nil
}

func (r *FeatureRepositoryImpl) Revoke(ctx context.Context, userId, featureId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND feature_id = ?", userId, featureId).
		Delete(&model.UserFeature{}).Error
}

func (r *FeatureRepositoryImpl) FindGrants(ctx context.Context, userId uuid.UUID) ([]*entity.UserFeature, error) {
	var models []*model.UserFeature
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&models).Error; err != nil {
		return nil, err
	}
	grants := make([]*entity.UserFeature, 0, len(models))
	for _, m := range models {
		grants = append(grants, r.mapper.GrantToEntity(m))
	}
	return grants, nil
}

func (r *FeatureRepositoryImpl) UserHasFeature(ctx context.Context, userId uuid.UUID, featureKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserFeature{}).
		Joins("JOIN features ON features.id = user_features.feature_id").
		Where("user_features.user_id = ?", userId).
		Where("features.key = ? AND features.is_active", featureKey).
		Where("user_features.expires_at IS NULL OR user_features.expires_at > ?", time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
