// DTOs for mention endpoints
package dto

import (
	"time"

	"github.com/google/uuid"
)

type MentionMediaDTO struct {
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"content_type,omitempty"`
}

type CreateMentionRequest struct {
	Title     string            `json:"title" validate:"required,max=255"`
	Body      string            `json:"body,omitempty"`
	Latitude  float64           `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64           `json:"longitude" validate:"required,min=-180,max=180"`
	Media     []MentionMediaDTO `json:"media,omitempty" validate:"dive"`
}

type MentionResponse struct {
	Id        uuid.UUID         `json:"id"`
	UserId    uuid.UUID         `json:"user_id"`
	Title     string            `json:"title"`
	Body      string            `json:"body,omitempty"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Media     []MentionMediaDTO `json:"media,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// BoundsQuery is the map viewport filter: ?min_lat=..&min_lng=..&max_lat=..&max_lng=..
type BoundsQuery struct {
	MinLat float64 `query:"min_lat" validate:"min=-90,max=90"`
	MinLng float64 `query:"min_lng" validate:"min=-180,max=180"`
	MaxLat float64 `query:"max_lat" validate:"min=-90,max=90"`
	MaxLng float64 `query:"max_lng" validate:"min=-180,max=180"`
	Limit  int     `query:"limit"`
}
