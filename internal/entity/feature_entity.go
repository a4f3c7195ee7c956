// Domain entities for the capability catalog and user grants
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feature is an entry in the capability catalog (pro, export, ...).
type Feature struct {
	Id          uuid.UUID
	Key         string // unique key: pro, export, bulk_data
	Name        string // display name: "Pro Access"
	Description string
	IsActive    bool // global kill switch for the capability
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserFeature grants a capability to a user. Absence of a row means the
// user does not hold the capability.
type UserFeature struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	FeatureId uuid.UUID
	GrantedAt time.Time
	ExpiresAt *time.Time // nil means no expiry
}

// Held reports whether the grant is currently effective.
func (uf *UserFeature) Held(now time.Time) bool {
	return uf.ExpiresAt == nil || uf.ExpiresAt.After(now)
}
