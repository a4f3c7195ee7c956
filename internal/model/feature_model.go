// GORM models for the capability catalog and user grants
package model

import (
	"time"

	"github.com/google/uuid"
)

type Feature struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	SortOrder   int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}

type UserFeature struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_feature"`
	FeatureId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_feature"`
	GrantedAt time.Time  `gorm:"autoCreateTime"`
	ExpiresAt *time.Time `gorm:"index"`
}

func (UserFeature) TableName() string {
	return "user_features"
}
