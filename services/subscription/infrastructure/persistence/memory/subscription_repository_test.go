package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

func newSubscription(t *testing.T, listID uuid.UUID, email, name string) *models.Subscription {
	t.Helper()
	e, err := models.ParseSubscriberEmail(email)
	if err != nil {
		t.Fatalf("ParseSubscriberEmail: %v", err)
	}
	n, err := models.ParseSubscriberName(name)
	if err != nil {
		t.Fatalf("ParseSubscriberName: %v", err)
	}
	return models.NewSubscription(listID, e, n)
}

func TestSubscriptionRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()
	listID := uuid.New()
	s := newSubscription(t, listID, "ursula@example.com", "Ursula")

	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, listID, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != s.Name {
		t.Fatalf("expected name %q, got %q", s.Name, got.Name)
	}

	if evts := repo.Published(); len(evts) != 1 || evts[0].SubscriptionID != s.ID {
		t.Fatalf("expected one created event for %s, got %+v", s.ID, evts)
	}
}

func TestSubscriptionRepository_DuplicateEmailPerList(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()
	listID := uuid.New()

	if err := repo.Save(ctx, newSubscription(t, listID, "ursula@example.com", "Ursula")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	err := repo.Save(ctx, newSubscription(t, listID, "ursula@example.com", "Someone Else"))
	if !errors.Is(err, subscriptiondomain.ErrSubscriptionAlreadyExists) {
		t.Fatalf("expected ErrSubscriptionAlreadyExists, got %v", err)
	}

	if err := repo.Save(ctx, newSubscription(t, uuid.New(), "ursula@example.com", "Ursula")); err != nil {
		t.Fatalf("same email on another list should be accepted: %v", err)
	}
}

func TestSubscriptionRepository_TenantScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()
	s := newSubscription(t, uuid.New(), "ursula@example.com", "Ursula")
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	otherList := uuid.New()
	if _, err := repo.GetByID(ctx, otherList, s.ID); !errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
	if ok, _ := repo.Exists(ctx, otherList, s.ID); ok {
		t.Fatal("expected Exists to be false for another list")
	}
	if err := repo.Delete(ctx, otherList, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := repo.Exists(ctx, s.ListID, s.ID); !ok {
		t.Fatal("delete from another list must not remove the subscription")
	}
}

func TestSubscriptionRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository()
	s := newSubscription(t, uuid.New(), "ursula@example.com", "Ursula")
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s.Confirm()
	if err := repo.UpdateStatus(ctx, s); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ := repo.GetByID(ctx, s.ListID, s.ID)
	if got.Status != models.StatusConfirmed {
		t.Fatalf("expected %q, got %q", models.StatusConfirmed, got.Status)
	}

	missing := newSubscription(t, uuid.New(), "x@example.com", "X")
	if err := repo.UpdateStatus(ctx, missing); !errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}
