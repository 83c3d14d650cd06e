package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// SubscriptionRepository is the persistence interface for the Subscription aggregate.
// The domain layer owns this interface; infrastructure implements it.
type SubscriptionRepository interface {
	// Save persists a new Subscription and publishes SubscriptionCreatedEvent.
	Save(ctx context.Context, s *models.Subscription) error
	GetByID(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, error)

	// UpdateStatus persists a status change on an existing Subscription.
	UpdateStatus(ctx context.Context, s *models.Subscription) error

	// Delete removes a subscription by ID scoped to the given list.
	Delete(ctx context.Context, listID, id uuid.UUID) error

	// Exists reports whether a subscription with the given ID exists for the given list.
	Exists(ctx context.Context, listID, id uuid.UUID) (bool, error)
}
