package mapper

import (
	"civicmap-be/internal/entity"
	"civicmap-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(mdl *model.User) *entity.User {
	if mdl == nil {
		return nil
	}
	return &entity.User{
		Id:           mdl.Id,
		Email:        mdl.Email,
		PasswordHash: mdl.PasswordHash,
		FullName:     mdl.FullName,
		// Strict decode at the storage boundary; unknown roles become
		// the zero role instead of leaking raw strings upward.
		Role:      entity.ParseUserRole(mdl.Role),
		Status:    entity.UserStatus(mdl.Status),
		AvatarURL: mdl.AvatarURL,
		CreatedAt: mdl.CreatedAt,
		UpdatedAt: mdl.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(ent *entity.User) *model.User {
	if ent == nil {
		return nil
	}
	return &model.User{
		Id:           ent.Id,
		Email:        ent.Email,
		PasswordHash: ent.PasswordHash,
		FullName:     ent.FullName,
		Role:         string(ent.Role),
		Status:       string(ent.Status),
		AvatarURL:    ent.AvatarURL,
		CreatedAt:    ent.CreatedAt,
		UpdatedAt:    ent.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
