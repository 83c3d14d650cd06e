package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/events"
	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	domainevents "github.com/ghuser/newsletter/services/subscription/domain/events"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/postgres/db"
)

const (
	pgUniqueViolation = "23505"
	eventVersion      = 1
)

// SubscriptionRepository implements repositories.SubscriptionRepository against PostgreSQL.
type SubscriptionRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSubscriptionRepository returns a SubscriptionRepository backed by the given
// connection pool and event bus. The bus writes SubscriptionCreatedEvents to the
// outbox inside the save transaction; a nil bus disables publishing.
func NewSubscriptionRepository(database *database.Database, bus *events.EventBus) *SubscriptionRepository {
	return &SubscriptionRepository{db: database, bus: bus}
}

// Save persists a new Subscription and publishes a SubscriptionCreatedEvent within
// the same transaction. Returns ErrSubscriptionAlreadyExists when the list
// already holds the email.
func (r *SubscriptionRepository) Save(ctx context.Context, s *models.Subscription) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertSubscription(ctx, db.InsertSubscriptionParams{
			ID:           s.ID,
			ListID:       s.ListID,
			Email:        s.Email.String(),
			Name:         s.Name.String(),
			Status:       string(s.Status),
			SubscribedAt: s.SubscribedAt,
		}); err != nil {
			if isUniqueViolation(err) {
				return subscriptiondomain.ErrSubscriptionAlreadyExists
			}
			return fmt.Errorf("insert subscription: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, s); err != nil {
				return fmt.Errorf("publish subscription created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Subscription by ID scoped to the given list.
// Returns ErrSubscriptionNotFound if not found.
func (r *SubscriptionRepository) GetByID(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, error) {
	q := db.New(r.db.DB())
	row, err := q.GetSubscriptionByID(ctx, db.GetSubscriptionByIDParams{
		ID:     id,
		ListID: listID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, subscriptiondomain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("query subscription: %w", err)
	}
	return rowToSubscription(row)
}

// UpdateStatus persists s.Status. Returns ErrSubscriptionNotFound when no row matched.
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, s *models.Subscription) error {
	q := db.New(r.db.DB())
	n, err := q.UpdateSubscriptionStatus(ctx, db.UpdateSubscriptionStatusParams{
		ID:     s.ID,
		ListID: s.ListID,
		Status: string(s.Status),
	})
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if n == 0 {
		return subscriptiondomain.ErrSubscriptionNotFound
	}
	return nil
}

// Delete removes a subscription by ID scoped to the given list.
func (r *SubscriptionRepository) Delete(ctx context.Context, listID, id uuid.UUID) error {
	q := db.New(r.db.DB())
	if err := q.DeleteSubscription(ctx, db.DeleteSubscriptionParams{
		ID:     id,
		ListID: listID,
	}); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// Exists reports whether a subscription with the given ID exists for the given list.
func (r *SubscriptionRepository) Exists(ctx context.Context, listID, id uuid.UUID) (bool, error) {
	q := db.New(r.db.DB())
	exists, err := q.SubscriptionExists(ctx, db.SubscriptionExistsParams{
		ID:     id,
		ListID: listID,
	})
	if err != nil {
		return false, fmt.Errorf("check subscription exists: %w", err)
	}
	return exists, nil
}

func (r *SubscriptionRepository) publishCreated(ctx context.Context, tx *sql.Tx, s *models.Subscription) error {
	evt := newCreatedEvent(s)
	msg, err := events.NewJSONMessage(ctx, evt.EventID.String(), evt.Version, evt)
	if err != nil {
		return err
	}
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicSubscriptionCreated, msg)
}

func newCreatedEvent(s *models.Subscription) domainevents.SubscriptionCreatedEvent {
	return domainevents.SubscriptionCreatedEvent{
		EventID:        uuid.New(),
		Version:        eventVersion,
		SubscriptionID: s.ID,
		ListID:         s.ListID,
		Email:          s.Email.String(),
		Name:           s.Name.String(),
		OccurredAt:     s.SubscribedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// rowToSubscription maps a db row to the domain aggregate. Stored email and
// name are re-validated; a row that fails is reported as an error.
func rowToSubscription(row db.SubscriptionSubscription) (*models.Subscription, error) {
	return models.RehydrateSubscription(row.ID, row.ListID, row.Email, row.Name, row.Status, row.SubscribedAt)
}
