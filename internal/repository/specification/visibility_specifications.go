package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByPath filters routes by exact path
type ByPath struct {
	Path string
}

func (s ByPath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("path = ?", s.Path)
}

// PrefixOf selects systems whose route prefix covers the given path.
// Longest prefix first, so the most specific system wins.
type PrefixOf struct {
	Path string
}

func (s PrefixOf) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where("? LIKE route_prefix || '%'", s.Path).
		Order("length(route_prefix) DESC")
}

// BySystemID filters routes owned by a system
type BySystemID struct {
	SystemID uuid.UUID
}

func (s BySystemID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("system_id = ?", s.SystemID)
}

// InBoundingBox selects mentions inside a map viewport
type InBoundingBox struct {
	MinLat, MinLng, MaxLat, MaxLng float64
}

func (s InBoundingBox) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
		s.MinLat, s.MaxLat, s.MinLng, s.MaxLng)
}
