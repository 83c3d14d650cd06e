package handlers

import (
	"time"

	"github.com/google/uuid"

	pkgvalidator "github.com/ghuser/newsletter/pkg/validator"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// SubscriberNameRule is the request validation tag for subscriber names.
const SubscriberNameRule = "subscriber_name"

// RegisterRequestRules registers the subscription request validation tags.
// Call once during route setup.
func RegisterRequestRules() error {
	return pkgvalidator.RegisterStringRule(SubscriberNameRule, func(s string) error {
		_, err := models.ParseSubscriberName(s)
		return err
	})
}

// SubscriptionResponse is the JSON representation of a subscription.
type SubscriptionResponse struct {
	ID           uuid.UUID `json:"id"            example:"123e4567-e89b-12d3-a456-426614174000"`
	ListID       uuid.UUID `json:"list_id"       example:"550e8400-e29b-41d4-a716-446655440000"`
	Email        string    `json:"email"         example:"ursula@example.com"`
	Name         string    `json:"name"          example:"Ursula Le Guin"`
	Status       string    `json:"status"        example:"pending_confirmation"`
	SubscribedAt time.Time `json:"subscribed_at" example:"2024-01-15T10:30:00Z"`
} // @name SubscriptionResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid subscriber name: Ursula {admin} is not a valid subscriber name"`
} // @name ErrorResponse

func toResponse(s *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:           s.ID,
		ListID:       s.ListID,
		Email:        s.Email.String(),
		Name:         s.Name.String(),
		Status:       string(s.Status),
		SubscribedAt: s.SubscribedAt,
	}
}
