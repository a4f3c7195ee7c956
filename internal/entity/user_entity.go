package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// ParseUserRole decodes a loosely-typed role value from the store into
// the enum. Anything unrecognized decodes to the zero role rather than
// erroring; callers treat that as "no role".
func ParseUserRole(raw string) UserRole {
	switch raw {
	case string(UserRoleAdmin):
		return UserRoleAdmin
	case string(UserRoleUser):
		return UserRoleUser
	default:
		return ""
	}
}

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Role         UserRole
	Status       UserStatus
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
