// Package audit records gate denials on an in-process bus. The gate
// itself stays side-effect free; the request interceptor publishes here
// after redirecting, and a background consumer writes the trail.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"civicmap-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const denyTopic = "gate_denied"

// DenyRecord is one denied navigation.
type DenyRecord struct {
	Path       string    `json:"path"`
	UserID     string    `json:"user_id,omitempty"`
	SystemKey  string    `json:"system_key,omitempty"`
	SystemName string    `json:"system_name,omitempty"`
	DeniedAt   time.Time `json:"denied_at"`
}

type Trail struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

// NewTrail builds the bus and its logger sink. The returned Trail must
// have Run called once to start draining.
func NewTrail(log logger.ILogger) *Trail {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	return &Trail{
		pubSub: pubSub,
		log:    log,
	}
}

// RecordDenial publishes asynchronously; a full bus drops the record
// rather than slowing the request path down.
func (t *Trail) RecordDenial(rec DenyRecord) {
	if rec.DeniedAt.IsZero() {
		rec.DeniedAt = time.Now()
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := t.pubSub.Publish(denyTopic, msg); err != nil {
		t.log.Warn("Audit", "failed to publish deny record", map[string]interface{}{"error": err.Error()})
	}
}

// Run consumes the trail until ctx is done.
func (t *Trail) Run(ctx context.Context) error {
	messages, err := t.pubSub.Subscribe(ctx, denyTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var rec DenyRecord
			if err := json.Unmarshal(msg.Payload, &rec); err != nil {
				t.log.Warn("Audit", "invalid deny record", map[string]interface{}{"error": err.Error()})
				msg.Ack() // don't retry garbage
				continue
			}
			t.log.Info("Audit", "navigation denied", map[string]interface{}{
				"path":        rec.Path,
				"user_id":     rec.UserID,
				"system_key":  rec.SystemKey,
				"system_name": rec.SystemName,
				"denied_at":   rec.DeniedAt.Format(time.RFC3339),
			})
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts the bus down after in-flight records drain.
func (t *Trail) Close() error {
	return t.pubSub.Close()
}
