package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus tracks the double opt-in lifecycle.
type SubscriptionStatus string

const (
	StatusPendingConfirmation SubscriptionStatus = "pending_confirmation"
	StatusConfirmed           SubscriptionStatus = "confirmed"
)

// Subscription is the core aggregate for this bounded context.
type Subscription struct {
	ID           uuid.UUID
	ListID       uuid.UUID // tenant scope — always filter by this in queries
	Email        SubscriberEmail
	Name         SubscriberName
	Status       SubscriptionStatus
	SubscribedAt time.Time
}

// NewSubscription constructs a pending Subscription with a generated ID and current timestamp.
func NewSubscription(listID uuid.UUID, email SubscriberEmail, name SubscriberName) *Subscription {
	return &Subscription{
		ID:           uuid.New(),
		ListID:       listID,
		Email:        email,
		Name:         name,
		Status:       StatusPendingConfirmation,
		SubscribedAt: time.Now().UTC(),
	}
}

// Confirm marks the subscription confirmed. Returns false if it already was.
func (s *Subscription) Confirm() bool {
	if s.Status == StatusConfirmed {
		return false
	}
	s.Status = StatusConfirmed
	return true
}

// ParseSubscriptionStatus maps a stored status string back to a SubscriptionStatus.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, bool) {
	switch SubscriptionStatus(s) {
	case StatusPendingConfirmation, StatusConfirmed:
		return SubscriptionStatus(s), true
	default:
		return "", false
	}
}

// RehydrateSubscription rebuilds a Subscription from stored fields. Email and
// name go back through their parsers, so a row or cache entry holding a value
// the validators would reject never re-enters the domain.
func RehydrateSubscription(id, listID uuid.UUID, email, name, status string, subscribedAt time.Time) (*Subscription, error) {
	subscriberEmail, err := ParseSubscriberEmail(email)
	if err != nil {
		return nil, fmt.Errorf("rehydrate subscription %s: %w", id, err)
	}
	subscriberName, err := ParseSubscriberName(name)
	if err != nil {
		return nil, fmt.Errorf("rehydrate subscription %s: %w", id, err)
	}
	st, ok := ParseSubscriptionStatus(status)
	if !ok {
		return nil, fmt.Errorf("rehydrate subscription %s: unknown status %q", id, status)
	}
	return &Subscription{
		ID:           id,
		ListID:       listID,
		Email:        subscriberEmail,
		Name:         subscriberName,
		Status:       st,
		SubscribedAt: subscribedAt,
	}, nil
}
