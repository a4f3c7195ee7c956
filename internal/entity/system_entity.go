// Domain entity for systems (feature areas of the map app)
package entity

import (
	"time"

	"github.com/google/uuid"
)

// System is a named feature area (stories, checkbook, districts, ...)
// mapped to a primary route prefix. Both flags must be true for end
// users to reach its pages; toggling them never touches the data
// stored under the system.
type System struct {
	Id              uuid.UUID
	Key             string // stable identifier: stories, checkbook, districts
	Name            string // display name: "Stories"
	RoutePrefix     string // primary prefix: /stories
	IsVisible       bool
	IsEnabled       bool
	RequiresFeature *string // capability key gating access further
	Metadata        map[string]interface{}
	SortOrder       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Route is a single addressable path, optionally owned by a system.
// SystemId is a weak reference: deleting a system does not cascade here.
type Route struct {
	Id              uuid.UUID
	Path            string
	SystemId        *uuid.UUID
	IsVisible       bool
	RequiresFeature *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
