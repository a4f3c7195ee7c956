// DTOs for the visibility check endpoint
package dto

// VisibilityCheckResponse answers the client-side router's pre-navigation
// probe.
type VisibilityCheckResponse struct {
	Path       string `json:"path"`
	Visible    bool   `json:"visible"`
	SystemKey  string `json:"system_key,omitempty"`
	SystemName string `json:"system_name,omitempty"`
}
