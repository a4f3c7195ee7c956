// Publisher fans admin toggle events out to the rest of the deployment.
package events

import (
	"context"

	"civicmap-be/internal/pkg/logger"
	"civicmap-be/pkg/events"
	pkgnats "civicmap-be/pkg/nats"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// NatsPublisher publishes best-effort: a down bus must not block an
// admin toggle, the bounded cache TTL covers the lost invalidation.
type NatsPublisher struct {
	pub *pkgnats.Publisher
	log logger.ILogger
}

func NewNatsPublisher(pub *pkgnats.Publisher, log logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		pub: pub,
		log: log,
	}
}

func (p *NatsPublisher) Publish(ctx context.Context, event events.Event) {
	if p.pub == nil {
		return
	}
	if err := p.pub.Publish(ctx, event); err != nil {
		p.log.Warn("AdminEvents", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
