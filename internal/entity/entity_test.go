package entity

import (
	"testing"
	"time"
)

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		raw  string
		want UserRole
	}{
		{"admin", UserRoleAdmin},
		{"user", UserRoleUser},
		{"superuser", ""},
		{"", ""},
		{"ADMIN", ""},
	}

	for _, tt := range tests {
		if got := ParseUserRole(tt.raw); got != tt.want {
			t.Errorf("ParseUserRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestUserFeatureHeld(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, true},
		{"future expiry", &future, true},
		{"past expiry", &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uf := UserFeature{ExpiresAt: tt.expiresAt}
			if got := uf.Held(now); got != tt.want {
				t.Errorf("Held() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	// Roughly the Twin Cities metro
	box := BoundingBox{MinLat: 44.7, MinLng: -93.6, MaxLat: 45.3, MaxLng: -92.8}

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"inside", 44.97, -93.26, true},
		{"on edge", 44.7, -93.6, true},
		{"north of box", 46.0, -93.26, false},
		{"west of box", 44.97, -94.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.lat, tt.lng); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}
