// Package notify publishes workflow events for downstream delivery (reviewer
// queues, student emails). Delivery itself happens elsewhere.
package notify

import (
	"context"
	"time"

	"internhub-api/internal/logger"
)

type EventType string

const (
	EventPartnerRegistered       EventType = "partner.registered"
	EventPartnerVerified         EventType = "partner.verified"
	EventPartnerSuspended        EventType = "partner.suspended"
	EventPartnerReactivated      EventType = "partner.reactivated"
	EventApplicationSubmitted    EventType = "application.submitted"
	EventApplicationStatus       EventType = "application.status_changed"
	EventApplicationInterviewSet EventType = "application.interview_scheduled"
)

type Event struct {
	Type       EventType         `json:"type"`
	Subject    string            `json:"subject"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher is implemented by SNSPublisher and LogPublisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the structured log. Used when SNS is disabled.
type LogPublisher struct {
	log logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.WithFields(map[string]interface{}{"component": "notify"})}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.log.Info("event published", map[string]interface{}{
		"type":       string(event.Type),
		"subject":    event.Subject,
		"attributes": event.Attributes,
	})
	return nil
}
