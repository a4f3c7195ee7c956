package mapper

import (
	"encoding/json"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/model"
)

type MentionMapper struct{}

func NewMentionMapper() *MentionMapper {
	return &MentionMapper{}
}

func (m *MentionMapper) ToEntity(mdl *model.Mention) *entity.Mention {
	if mdl == nil {
		return nil
	}
	var media []entity.MentionMedia
	if len(mdl.Media) > 0 {
		_ = json.Unmarshal(mdl.Media, &media)
	}
	return &entity.Mention{
		Id:        mdl.Id,
		UserId:    mdl.UserId,
		Title:     mdl.Title,
		Body:      mdl.Body,
		Latitude:  mdl.Latitude,
		Longitude: mdl.Longitude,
		Media:     media,
		CreatedAt: mdl.CreatedAt,
		UpdatedAt: mdl.UpdatedAt,
	}
}

func (m *MentionMapper) ToModel(ent *entity.Mention) *model.Mention {
	if ent == nil {
		return nil
	}
	var media []byte
	if ent.Media != nil {
		media, _ = json.Marshal(ent.Media)
	}
	return &model.Mention{
		Id:        ent.Id,
		UserId:    ent.UserId,
		Title:     ent.Title,
		Body:      ent.Body,
		Latitude:  ent.Latitude,
		Longitude: ent.Longitude,
		Media:     media,
		CreatedAt: ent.CreatedAt,
		UpdatedAt: ent.UpdatedAt,
	}
}

func (m *MentionMapper) ToEntities(models []*model.Mention) []*entity.Mention {
	entities := make([]*entity.Mention, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
