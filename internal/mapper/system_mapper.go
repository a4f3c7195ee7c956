// Mappers for System/Route entity <-> model conversion
package mapper

import (
	"encoding/json"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/model"
)

type SystemMapper struct{}

func NewSystemMapper() *SystemMapper {
	return &SystemMapper{}
}

func (m *SystemMapper) ToEntity(mdl *model.System) *entity.System {
	if mdl == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(mdl.Metadata) > 0 {
		// Decode failure leaves metadata nil; display extras are not
		// worth failing a lookup over.
		_ = json.Unmarshal(mdl.Metadata, &metadata)
	}
	return &entity.System{
		Id:              mdl.Id,
		Key:             mdl.Key,
		Name:            mdl.Name,
		RoutePrefix:     mdl.RoutePrefix,
		IsVisible:       mdl.IsVisible,
		IsEnabled:       mdl.IsEnabled,
		RequiresFeature: mdl.RequiresFeature,
		Metadata:        metadata,
		SortOrder:       mdl.SortOrder,
		CreatedAt:       mdl.CreatedAt,
		UpdatedAt:       mdl.UpdatedAt,
	}
}

func (m *SystemMapper) ToModel(ent *entity.System) *model.System {
	if ent == nil {
		return nil
	}
	var metadata []byte
	if ent.Metadata != nil {
		metadata, _ = json.Marshal(ent.Metadata)
	}
	return &model.System{
		Id:              ent.Id,
		Key:             ent.Key,
		Name:            ent.Name,
		RoutePrefix:     ent.RoutePrefix,
		IsVisible:       ent.IsVisible,
		IsEnabled:       ent.IsEnabled,
		RequiresFeature: ent.RequiresFeature,
		Metadata:        metadata,
		SortOrder:       ent.SortOrder,
		CreatedAt:       ent.CreatedAt,
		UpdatedAt:       ent.UpdatedAt,
	}
}

func (m *SystemMapper) ToEntities(models []*model.System) []*entity.System {
	entities := make([]*entity.System, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

type RouteMapper struct{}

func NewRouteMapper() *RouteMapper {
	return &RouteMapper{}
}

func (m *RouteMapper) ToEntity(mdl *model.Route) *entity.Route {
	if mdl == nil {
		return nil
	}
	return &entity.Route{
		Id:              mdl.Id,
		Path:            mdl.Path,
		SystemId:        mdl.SystemId,
		IsVisible:       mdl.IsVisible,
		RequiresFeature: mdl.RequiresFeature,
		CreatedAt:       mdl.CreatedAt,
		UpdatedAt:       mdl.UpdatedAt,
	}
}

func (m *RouteMapper) ToModel(ent *entity.Route) *model.Route {
	if ent == nil {
		return nil
	}
	return &model.Route{
		Id:              ent.Id,
		Path:            ent.Path,
		SystemId:        ent.SystemId,
		IsVisible:       ent.IsVisible,
		RequiresFeature: ent.RequiresFeature,
		CreatedAt:       ent.CreatedAt,
		UpdatedAt:       ent.UpdatedAt,
	}
}

func (m *RouteMapper) ToEntities(models []*model.Route) []*entity.Route {
	entities := make([]*entity.Route, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
