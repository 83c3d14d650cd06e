// Package workflows holds the Temporal workflows of the subscription context.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

const errTypeSubscriptionNotFound = "SubscriptionNotFound"

// ConfirmSubscriptionInput identifies the subscription to confirm.
type ConfirmSubscriptionInput struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ListID         uuid.UUID `json:"list_id"`
}

// Confirmer confirms a stored subscription.
type Confirmer interface {
	Confirm(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, error)
}

// Activities are the activities used by ConfirmSubscriptionWorkflow.
type Activities struct {
	Confirmer Confirmer
}

// ConfirmSubscription confirms one subscription. A missing subscription
// fails without retries since it was removed before confirmation ran.
func (a *Activities) ConfirmSubscription(ctx context.Context, in ConfirmSubscriptionInput) error {
	if _, err := a.Confirmer.Confirm(ctx, in.ListID, in.SubscriptionID); err != nil {
		if errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound) {
			return temporal.NewNonRetryableApplicationError(err.Error(), errTypeSubscriptionNotFound, err)
		}
		return err
	}
	return nil
}

// ConfirmSubscriptionWorkflow runs the confirmation step of double opt-in.
func ConfirmSubscriptionWorkflow(ctx workflow.Context, in ConfirmSubscriptionInput) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    5,
		},
	})

	var a *Activities
	if err := workflow.ExecuteActivity(ctx, a.ConfirmSubscription, in).Get(ctx, nil); err != nil {
		return fmt.Errorf("confirm subscription %s: %w", in.SubscriptionID, err)
	}
	workflow.GetLogger(ctx).Info("subscription confirmed", "subscription_id", in.SubscriptionID.String())
	return nil
}

// Register adds the confirmation workflow and its activities to w.
func Register(w worker.Registry, acts *Activities) {
	w.RegisterWorkflow(ConfirmSubscriptionWorkflow)
	w.RegisterActivity(acts)
}

// WorkflowID is the deterministic workflow id for a subscription, so
// redelivered events attach to the running execution instead of starting a second one.
func WorkflowID(subscriptionID uuid.UUID) string {
	return "confirm-" + subscriptionID.String()
}

// StartConfirmation starts ConfirmSubscriptionWorkflow on taskQueue.
func StartConfirmation(ctx context.Context, c client.Client, taskQueue string, in ConfirmSubscriptionInput) error {
	_, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(in.SubscriptionID),
		TaskQueue: taskQueue,
	}, ConfirmSubscriptionWorkflow, in)
	if err != nil {
		return fmt.Errorf("start confirmation workflow: %w", err)
	}
	return nil
}
