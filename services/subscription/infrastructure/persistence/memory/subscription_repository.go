// Package memory provides an in-process SubscriptionRepository for tests and
// local runs without Postgres. It enforces the same uniqueness and tenant
// scoping rules as the Postgres implementation.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/events"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// SubscriptionRepository stores subscriptions in a map keyed by ID.
type SubscriptionRepository struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]models.Subscription
	published []events.SubscriptionCreatedEvent
}

// NewSubscriptionRepository returns an empty repository.
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{byID: make(map[uuid.UUID]models.Subscription)}
}

// Save stores s and records a SubscriptionCreatedEvent.
// Returns ErrSubscriptionAlreadyExists when the list already has the email.
func (r *SubscriptionRepository) Save(_ context.Context, s *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.ID == s.ID || (existing.ListID == s.ListID && existing.Email == s.Email) {
			return subscriptiondomain.ErrSubscriptionAlreadyExists
		}
	}
	r.byID[s.ID] = *s
	r.published = append(r.published, events.SubscriptionCreatedEvent{
		EventID:        uuid.New(),
		Version:        1,
		SubscriptionID: s.ID,
		ListID:         s.ListID,
		Email:          s.Email.String(),
		Name:           s.Name.String(),
		OccurredAt:     s.SubscribedAt,
	})
	return nil
}

// GetByID returns a copy of the stored subscription.
func (r *SubscriptionRepository) GetByID(_ context.Context, listID, id uuid.UUID) (*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok || s.ListID != listID {
		return nil, subscriptiondomain.ErrSubscriptionNotFound
	}
	return &s, nil
}

// UpdateStatus overwrites the stored status of s.
func (r *SubscriptionRepository) UpdateStatus(_ context.Context, s *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[s.ID]
	if !ok || stored.ListID != s.ListID {
		return subscriptiondomain.ErrSubscriptionNotFound
	}
	stored.Status = s.Status
	r.byID[s.ID] = stored
	return nil
}

// Delete removes a subscription. Deleting a missing one is not an error.
func (r *SubscriptionRepository) Delete(_ context.Context, listID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byID[id]; ok && s.ListID == listID {
		delete(r.byID, id)
	}
	return nil
}

// Exists reports whether id is stored under listID.
func (r *SubscriptionRepository) Exists(_ context.Context, listID, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	return ok && s.ListID == listID, nil
}

// Published returns the events recorded by Save, oldest first.
func (r *SubscriptionRepository) Published() []events.SubscriptionCreatedEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.SubscriptionCreatedEvent, len(r.published))
	copy(out, r.published)
	return out
}
