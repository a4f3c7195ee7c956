// GORM models for the systems and routes tables
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type System struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name            string    `gorm:"type:varchar(255);not null"`
	RoutePrefix     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	IsVisible       bool      `gorm:"not null;default:true"`
	IsEnabled       bool      `gorm:"not null;default:true"`
	RequiresFeature *string   `gorm:"type:varchar(100)"`
	Metadata        datatypes.JSON
	SortOrder       int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (System) TableName() string {
	return "systems"
}

type Route struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Path      string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	SystemId  *uuid.UUID `gorm:"type:uuid;index"`
	IsVisible bool       `gorm:"not null;default:true"`
	// Weak reference: no FK constraint, a deleted system leaves the
	// route row behind with a dangling SystemId.
	System          *System   `gorm:"foreignKey:SystemId;references:Id;constraint:-"`
	RequiresFeature *string   `gorm:"type:varchar(100)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Route) TableName() string {
	return "routes"
}
