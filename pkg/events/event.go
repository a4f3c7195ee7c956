package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SYSTEM_TOGGLED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the bus.
const (
	TypeSystemToggled  = "SYSTEM_TOGGLED"
	TypeRouteToggled   = "ROUTE_TOGGLED"
	TypeFeatureChanged = "FEATURE_CHANGED"
	TypeMentionCreated = "MENTION_CREATED"
)

// NewSystemToggled records an admin flipping a system's flags.
func NewSystemToggled(systemKey string, isVisible, isEnabled bool) Event {
	return BaseEvent{
		Type: TypeSystemToggled,
		Data: map[string]interface{}{
			"system_key": systemKey,
			"is_visible": isVisible,
			"is_enabled": isEnabled,
		},
		OccurredAt: time.Now(),
	}
}

func NewRouteToggled(path string, isVisible bool) Event {
	return BaseEvent{
		Type: TypeRouteToggled,
		Data: map[string]interface{}{
			"path":       path,
			"is_visible": isVisible,
		},
		OccurredAt: time.Now(),
	}
}

func NewFeatureChanged(featureKey string) Event {
	return BaseEvent{
		Type: TypeFeatureChanged,
		Data: map[string]interface{}{
			"feature_key": featureKey,
		},
		OccurredAt: time.Now(),
	}
}

func NewMentionCreated(mentionID string, lat, lng float64) Event {
	return BaseEvent{
		Type: TypeMentionCreated,
		Data: map[string]interface{}{
			"mention_id": mentionID,
			"latitude":   lat,
			"longitude":  lng,
		},
		OccurredAt: time.Now(),
	}
}
