package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicSubscriptionCreated is the Watermill topic published when a Subscription is created.
const TopicSubscriptionCreated = "subscription.created"

// SubscriptionCreatedEvent is published after a new Subscription is persisted.
// Name and Email carry the validated values as plain strings; consumers
// re-parse them before treating them as domain values.
type SubscriptionCreatedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	Version        int       `json:"version"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ListID         uuid.UUID `json:"list_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	OccurredAt     time.Time `json:"occurred_at"`
}
