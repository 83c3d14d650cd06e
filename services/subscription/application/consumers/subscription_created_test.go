package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/logger"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
	"github.com/ghuser/newsletter/services/subscription/application/workflows"
	"github.com/ghuser/newsletter/services/subscription/domain/events"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/memory"
)

func eventMessage(t *testing.T, evt events.SubscriptionCreatedEvent) *message.Message {
	t.Helper()
	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), payload)
}

func setup(t *testing.T) (*appsvcs.SubscriptionService, *memory.SubscriptionRepository, logger.Logger) {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, "error")
	repo := memory.NewSubscriptionRepository()
	return appsvcs.NewSubscriptionService(repo, nil, nil, log), repo, log
}

func TestSubscriptionCreated_StartsConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, repo, log := setup(t)
	sub, err := svc.Subscribe(ctx, uuid.New(), "ursula@example.com", "Ursula")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	var started []workflows.ConfirmSubscriptionInput
	start := func(_ context.Context, in workflows.ConfirmSubscriptionInput) error {
		started = append(started, in)
		return nil
	}

	handler := SubscriptionCreated(svc, start, log)
	if err := handler(ctx, eventMessage(t, repo.Published()[0])); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(started) != 1 || started[0].SubscriptionID != sub.ID || started[0].ListID != sub.ListID {
		t.Fatalf("expected one start for %s, got %+v", sub.ID, started)
	}
}

func TestSubscriptionCreated_SkipsConfirmed(t *testing.T) {
	ctx := context.Background()
	svc, repo, log := setup(t)
	sub, err := svc.Subscribe(ctx, uuid.New(), "ursula@example.com", "Ursula")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := svc.Confirm(ctx, sub.ListID, sub.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	called := false
	start := func(context.Context, workflows.ConfirmSubscriptionInput) error {
		called = true
		return nil
	}
	if err := SubscriptionCreated(svc, start, log)(ctx, eventMessage(t, repo.Published()[0])); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if called {
		t.Fatal("confirmed subscription must not start another workflow")
	}
}

func TestSubscriptionCreated_Acknowledges(t *testing.T) {
	ctx := context.Background()
	svc, _, log := setup(t)
	start := func(context.Context, workflows.ConfirmSubscriptionInput) error {
		t.Fatal("start must not be called")
		return nil
	}
	handler := SubscriptionCreated(svc, start, log)

	t.Run("malformed payload", func(t *testing.T) {
		msg := message.NewMessage(watermill.NewUUID(), []byte("{"))
		if err := handler(ctx, msg); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("subscription already removed", func(t *testing.T) {
		msg := eventMessage(t, events.SubscriptionCreatedEvent{
			EventID:        uuid.New(),
			Version:        1,
			SubscriptionID: uuid.New(),
			ListID:         uuid.New(),
			OccurredAt:     time.Now().UTC(),
		})
		if err := handler(ctx, msg); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

type failingReader struct{ err error }

func (f failingReader) GetByID(context.Context, uuid.UUID, uuid.UUID) (*models.Subscription, error) {
	return nil, f.err
}

func TestSubscriptionCreated_RetriesTransientErrors(t *testing.T) {
	boom := errors.New("connection reset")
	handler := SubscriptionCreated(failingReader{err: boom}, nil, logger.NewWithWriter(io.Discard, "error"))

	msg := eventMessage(t, events.SubscriptionCreatedEvent{SubscriptionID: uuid.New(), ListID: uuid.New()})
	if err := handler(context.Background(), msg); !errors.Is(err, boom) {
		t.Fatalf("expected transient error to be returned, got %v", err)
	}
}

func TestSubscriptionCreated_NilStarter(t *testing.T) {
	ctx := context.Background()
	svc, repo, log := setup(t)
	if _, err := svc.Subscribe(ctx, uuid.New(), "ursula@example.com", "Ursula"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := SubscriptionCreated(svc, nil, log)(ctx, eventMessage(t, repo.Published()[0])); err != nil {
		t.Fatalf("handler: %v", err)
	}
}
