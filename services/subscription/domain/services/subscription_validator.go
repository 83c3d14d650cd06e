// Package services contains stateless domain services for the subscription bounded context.
// Domain services enforce business rules that operate purely on domain types.
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// ValidateSubscriptionForCreation performs cross-field checks on a
// Subscription before it is persisted. Name and email are already valid by
// construction; this only guards against zero values and a wrong starting status.
func ValidateSubscriptionForCreation(s *models.Subscription) error {
	if s == nil {
		return fmt.Errorf("subscription cannot be nil")
	}

	if s.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if s.ListID == uuid.Nil {
		return fmt.Errorf("list_id must be set")
	}

	if s.Name.IsZero() {
		return fmt.Errorf("name must be set")
	}

	if s.Email.IsZero() {
		return fmt.Errorf("email must be set")
	}

	if s.Status != models.StatusPendingConfirmation {
		return fmt.Errorf("new subscription must be %s, got %q", models.StatusPendingConfirmation, s.Status)
	}

	return nil
}
