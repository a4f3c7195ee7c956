// DTOs for admin management of systems, routes and the capability catalog
package dto

import (
	"github.com/google/uuid"
)

// --- Systems ---

type CreateSystemRequest struct {
	Key             string                 `json:"key" validate:"required"`
	Name            string                 `json:"name" validate:"required"`
	RoutePrefix     string                 `json:"route_prefix" validate:"required,startswith=/"`
	IsVisible       bool                   `json:"is_visible"`
	IsEnabled       bool                   `json:"is_enabled"`
	RequiresFeature *string                `json:"requires_feature,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	SortOrder       int                    `json:"sort_order"`
}

type UpdateSystemRequest struct {
	Name            *string                `json:"name,omitempty"`
	RoutePrefix     *string                `json:"route_prefix,omitempty"`
	IsVisible       *bool                  `json:"is_visible,omitempty"`
	IsEnabled       *bool                  `json:"is_enabled,omitempty"`
	RequiresFeature *string                `json:"requires_feature,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	SortOrder       *int                   `json:"sort_order,omitempty"`
}

type SystemResponse struct {
	Id              uuid.UUID              `json:"id"`
	Key             string                 `json:"key"`
	Name            string                 `json:"name"`
	RoutePrefix     string                 `json:"route_prefix"`
	IsVisible       bool                   `json:"is_visible"`
	IsEnabled       bool                   `json:"is_enabled"`
	State           string                 `json:"state"`
	RequiresFeature *string                `json:"requires_feature,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	SortOrder       int                    `json:"sort_order"`
}

// --- Routes ---

type CreateRouteRequest struct {
	Path            string     `json:"path" validate:"required,startswith=/"`
	SystemId        *uuid.UUID `json:"system_id,omitempty"`
	IsVisible       bool       `json:"is_visible"`
	RequiresFeature *string    `json:"requires_feature,omitempty"`
}

type UpdateRouteRequest struct {
	SystemId        *uuid.UUID `json:"system_id,omitempty"`
	IsVisible       *bool      `json:"is_visible,omitempty"`
	RequiresFeature *string    `json:"requires_feature,omitempty"`
}

type RouteResponse struct {
	Id              uuid.UUID  `json:"id"`
	Path            string     `json:"path"`
	SystemId        *uuid.UUID `json:"system_id,omitempty"`
	IsVisible       bool       `json:"is_visible"`
	RequiresFeature *string    `json:"requires_feature,omitempty"`
}

// --- Capability catalog ---

type CreateFeatureRequest struct {
	Key         string `json:"key" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateFeatureRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

type FeatureResponse struct {
	Id          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
}

type GrantFeatureRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	FeatureId uuid.UUID `json:"feature_id" validate:"required"`
	ExpiresAt *string   `json:"expires_at,omitempty"` // RFC3339, empty means no expiry
}
