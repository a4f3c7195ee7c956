// Mapper for Feature/UserFeature entity <-> model conversion
package mapper

import (
	"civicmap-be/internal/entity"
	"civicmap-be/internal/model"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

func (m *FeatureMapper) ToEntity(mdl *model.Feature) *entity.Feature {
	if mdl == nil {
		return nil
	}
	return &entity.Feature{
		Id:          mdl.Id,
		Key:         mdl.Key,
		Name:        mdl.Name,
		Description: mdl.Description,
		IsActive:    mdl.IsActive,
		SortOrder:   mdl.SortOrder,
		CreatedAt:   mdl.CreatedAt,
		UpdatedAt:   mdl.UpdatedAt,
	}
}

func (m *FeatureMapper) ToModel(ent *entity.Feature) *model.Feature {
	if ent == nil {
		return nil
	}
	return &model.Feature{
		Id:          ent.Id,
		Key:         ent.Key,
		Name:        ent.Name,
		Description: ent.Description,
		IsActive:    ent.IsActive,
		SortOrder:   ent.SortOrder,
		CreatedAt:   ent.CreatedAt,
		UpdatedAt:   ent.UpdatedAt,
	}
}

func (m *FeatureMapper) ToEntities(models []*model.Feature) []*entity.Feature {
	entities := make([]*entity.Feature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

func (m *FeatureMapper) GrantToEntity(mdl *model.UserFeature) *entity.UserFeature {
	if mdl == nil {
		return nil
	}
	return &entity.UserFeature{
		Id:        mdl.Id,
		UserId:    mdl.UserId,
		FeatureId: mdl.FeatureId,
		GrantedAt: mdl.GrantedAt,
		ExpiresAt: mdl.ExpiresAt,
	}
}

func (m *FeatureMapper) GrantToModel(ent *entity.UserFeature) *model.UserFeature {
	if ent == nil {
		return nil
	}
	return &model.UserFeature{
		Id:        ent.Id,
		UserId:    ent.UserId,
		FeatureId: ent.FeatureId,
		GrantedAt: ent.GrantedAt,
		ExpiresAt: ent.ExpiresAt,
	}
}
