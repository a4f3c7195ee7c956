// Domain entity for mentions (geotagged pins on the map)
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Mention struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Body      string
	Latitude  float64
	Longitude float64
	Media     []MentionMedia
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MentionMedia is an attachment reference stored alongside the pin.
type MentionMedia struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// BoundingBox selects mentions inside a map viewport.
type BoundingBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}
