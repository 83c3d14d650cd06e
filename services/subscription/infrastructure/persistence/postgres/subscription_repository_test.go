package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/newsletter/pkg/config"
	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/migrator"
	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/postgres/db"
)

func TestRowToSubscription(t *testing.T) {
	row := db.SubscriptionSubscription{
		ID:           uuid.New(),
		ListID:       uuid.New(),
		Email:        "ursula@example.com",
		Name:         "Ursula Le Guin ",
		Status:       "confirmed",
		SubscribedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	t.Run("valid row", func(t *testing.T) {
		s, err := rowToSubscription(row)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Name.String() != row.Name || s.Status != models.StatusConfirmed {
			t.Fatalf("unexpected subscription: %+v", s)
		}
	})

	t.Run("corrupt name is rejected", func(t *testing.T) {
		bad := row
		bad.Name = `Robert"); DROP TABLE subscriptions;--`
		_, err := rowToSubscription(bad)
		var nameErr *models.InvalidSubscriberNameError
		if !errors.As(err, &nameErr) {
			t.Fatalf("expected InvalidSubscriberNameError, got %v", err)
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Error("plain error is not a unique violation")
	}
}

func TestNewCreatedEvent(t *testing.T) {
	name, _ := models.ParseSubscriberName("Ursula")
	email, _ := models.ParseSubscriberEmail("ursula@example.com")
	s := models.NewSubscription(uuid.New(), email, name)

	evt := newCreatedEvent(s)
	if evt.EventID == uuid.Nil || evt.Version != eventVersion {
		t.Fatalf("unexpected event identity: %+v", evt)
	}
	if evt.SubscriptionID != s.ID || evt.ListID != s.ListID || evt.Name != "Ursula" || !evt.OccurredAt.Equal(s.SubscribedAt) {
		t.Fatalf("event does not mirror subscription: %+v", evt)
	}
}

// Integration tests — skipped unless DATABASE_URL is set.
func TestSubscriptionRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	if err := migrator.RunMigrations(url, os.DirFS("../../../../../migrations/subscription"), "subscription_goose_db_version"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, url, database.PoolConfig{MaxOpenConns: 2}, logger.New(&config.Config{LogLevel: "error"}))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close() //nolint:errcheck

	repo := NewSubscriptionRepository(pool, nil)
	name, _ := models.ParseSubscriberName("Ursula Le Guin")
	email, _ := models.ParseSubscriberEmail(fmt.Sprintf("ursula+%s@example.com", uuid.NewString()[:8]))
	s := models.NewSubscription(uuid.New(), email, name)
	t.Cleanup(func() { _ = repo.Delete(ctx, s.ListID, s.ID) })

	t.Run("Save_GetByID", func(t *testing.T) {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := repo.GetByID(ctx, s.ListID, s.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != s.Name || got.Email != s.Email {
			t.Fatalf("expected %+v, got %+v", s, got)
		}
	})

	t.Run("Save_DuplicateEmail", func(t *testing.T) {
		dup := models.NewSubscription(s.ListID, email, name)
		if err := repo.Save(ctx, dup); !errors.Is(err, subscriptiondomain.ErrSubscriptionAlreadyExists) {
			t.Fatalf("expected ErrSubscriptionAlreadyExists, got %v", err)
		}
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		s.Confirm()
		if err := repo.UpdateStatus(ctx, s); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		got, _ := repo.GetByID(ctx, s.ListID, s.ID)
		if got.Status != models.StatusConfirmed {
			t.Fatalf("expected confirmed, got %q", got.Status)
		}
	})

	t.Run("GetByID_OtherList", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, uuid.New(), s.ID); !errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound) {
			t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, s.ListID, s.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		ok, err := repo.Exists(ctx, s.ListID, s.ID)
		if err != nil || ok {
			t.Fatalf("expected not to exist, got ok=%v err=%v", ok, err)
		}
	})
}
