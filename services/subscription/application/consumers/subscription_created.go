// Package consumers holds the event handlers of the subscription context.
package consumers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/services/subscription/application/workflows"
	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/events"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

// SubscriptionReader loads a subscription. SubscriptionService satisfies it and
// fills the Redis read model as a side effect.
type SubscriptionReader interface {
	GetByID(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, error)
}

// ConfirmationStarter starts the confirmation workflow for one subscription.
type ConfirmationStarter func(ctx context.Context, in workflows.ConfirmSubscriptionInput) error

// SubscriptionCreated returns the handler for subscription.created events.
// It loads the subscription from the source of truth, which fills the cache,
// then starts confirmation when start is non-nil and the subscription is
// still pending.
//
// Handlers must be idempotent: EventBus retries up to 3x on failure. Payloads
// that can never succeed are logged and acknowledged.
func SubscriptionCreated(reader SubscriptionReader, start ConfirmationStarter, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt events.SubscriptionCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			log.ErrorContext(ctx, "dropping malformed subscription.created payload",
				"message_uuid", msg.UUID, "error", err)
			return nil
		}

		sub, err := reader.GetByID(ctx, evt.ListID, evt.SubscriptionID)
		if errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound) {
			log.InfoContext(ctx, "subscription removed before processing",
				"subscription_id", evt.SubscriptionID, "list_id", evt.ListID)
			return nil
		}
		if err != nil {
			return err
		}

		if start == nil || sub.Status != models.StatusPendingConfirmation {
			return nil
		}
		if err := start(ctx, workflows.ConfirmSubscriptionInput{
			SubscriptionID: sub.ID,
			ListID:         sub.ListID,
		}); err != nil {
			return err
		}
		log.InfoContext(ctx, "confirmation started",
			"subscription_id", sub.ID, "workflow_id", workflows.WorkflowID(sub.ID))
		return nil
	}
}
