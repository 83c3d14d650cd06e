package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/telemetry"
	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
	"github.com/ghuser/newsletter/services/subscription/domain/repositories"
	domainsvcs "github.com/ghuser/newsletter/services/subscription/domain/services"
)

// ReadModelCache is the Redis read model behind GetByID. Fills are guarded
// by a generation counter that Invalidate bumps, so a fill that loaded the
// row before a confirm or delete cannot overwrite the newer state.
type ReadModelCache interface {
	Get(ctx context.Context, listID, id uuid.UUID) (*pkgcache.CachedSubscription, error)
	Generation(ctx context.Context, listID, id uuid.UUID) (int64, error)
	SetIfGeneration(ctx context.Context, s *pkgcache.CachedSubscription, gen int64) (bool, error)
	Invalidate(ctx context.Context, listID, id uuid.UUID) error
}

// SubscriptionService orchestrates sign-up, lookup, confirmation and removal
// of Subscriptions. Event publishing is handled by the repository layer
// (outbox pattern). Reads are served from Redis when a cache is configured.
type SubscriptionService struct {
	repo    repositories.SubscriptionRepository
	cache   ReadModelCache
	metrics *telemetry.SubscriptionMetrics
	log     logger.Logger
}

// NewSubscriptionService returns a SubscriptionService. cache and metrics may be nil.
func NewSubscriptionService(
	repo repositories.SubscriptionRepository,
	cache ReadModelCache,
	metrics *telemetry.SubscriptionMetrics,
	log logger.Logger,
) *SubscriptionService {
	return &SubscriptionService{repo: repo, cache: cache, metrics: metrics, log: log}
}

// Subscribe validates the raw email and name and persists a pending
// Subscription. The repository publishes SubscriptionCreatedEvent.
func (s *SubscriptionService) Subscribe(ctx context.Context, listID uuid.UUID, email, name string) (*models.Subscription, error) {
	subscriberEmail, err := models.ParseSubscriberEmail(email)
	if err != nil {
		s.log.WarnContext(ctx, "subscriber email rejected", "list_id", listID, "email", email)
		if s.metrics != nil {
			s.metrics.EmailRejected.Add(ctx, 1)
		}
		return nil, fmt.Errorf("%w: %w", subscriptiondomain.ErrInvalidSubscriberEmail, err)
	}

	subscriberName, err := models.ParseSubscriberName(name)
	if err != nil {
		s.log.WarnContext(ctx, "subscriber name rejected", "list_id", listID, "name", name)
		if s.metrics != nil {
			s.metrics.NameRejected.Add(ctx, 1)
		}
		return nil, fmt.Errorf("%w: %w", subscriptiondomain.ErrInvalidSubscriberName, err)
	}

	sub := models.NewSubscription(listID, subscriberEmail, subscriberName)
	if err := domainsvcs.ValidateSubscriptionForCreation(sub); err != nil {
		return nil, fmt.Errorf("validate subscription: %w", err)
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	if s.metrics != nil {
		s.metrics.Created.Add(ctx, 1)
	}
	s.log.InfoContext(ctx, "subscription created",
		"subscription_id", sub.ID, "list_id", sub.ListID, "email", sub.Email.String())
	return sub, nil
}

// GetByID retrieves a Subscription using a read-through cache:
//  1. Check Redis first; cached fields are re-parsed before use.
//  2. On miss, record the cache generation, then query Postgres.
//  3. Fill the cache with the Postgres result unless the generation moved.
func (s *SubscriptionService) GetByID(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, error) {
	var (
		gen     int64
		canFill bool
	)
	if s.cache != nil {
		if sub, ok := s.fromCache(ctx, listID, id); ok {
			return sub, nil
		}
		g, err := s.cache.Generation(ctx, listID, id)
		if err != nil {
			s.log.WarnContext(ctx, "cache generation read failed", "subscription_id", id, "error", err)
		} else {
			gen, canFill = g, true
		}
	}

	sub, err := s.repo.GetByID(ctx, listID, id)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	if canFill {
		s.fill(ctx, sub, gen)
	}
	return sub, nil
}

// Confirm moves a pending Subscription to confirmed. Confirming an already
// confirmed subscription succeeds without writing.
func (s *SubscriptionService) Confirm(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, listID, id)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	if !sub.Confirm() {
		return sub, nil
	}
	if err := s.repo.UpdateStatus(ctx, sub); err != nil {
		return nil, fmt.Errorf("confirm subscription: %w", err)
	}
	s.invalidate(ctx, listID, id)
	s.log.InfoContext(ctx, "subscription confirmed", "subscription_id", sub.ID, "list_id", sub.ListID)
	return sub, nil
}

// Unsubscribe removes a subscription scoped to the given list.
// Returns ErrSubscriptionNotFound if no matching subscription exists.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, listID, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, listID, id)
	if err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}
	if !exists {
		return subscriptiondomain.ErrSubscriptionNotFound
	}
	if err := s.repo.Delete(ctx, listID, id); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	s.invalidate(ctx, listID, id)
	s.log.InfoContext(ctx, "subscription removed", "subscription_id", id, "list_id", listID)
	return nil
}

func (s *SubscriptionService) fromCache(ctx context.Context, listID, id uuid.UUID) (*models.Subscription, bool) {
	cached, err := s.cache.Get(ctx, listID, id)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "cache read failed", "subscription_id", id, "error", err)
		}
		return nil, false
	}
	sub, err := models.RehydrateSubscription(cached.ID, cached.ListID, cached.Email, cached.Name, cached.Status, cached.SubscribedAt)
	if err != nil {
		s.log.WarnContext(ctx, "discarding invalid cache entry", "subscription_id", id, "error", err)
		s.invalidate(ctx, listID, id)
		return nil, false
	}
	return sub, true
}

func (s *SubscriptionService) fill(ctx context.Context, sub *models.Subscription, gen int64) {
	stored, err := s.cache.SetIfGeneration(ctx, ToCached(sub), gen)
	if err != nil {
		s.log.WarnContext(ctx, "cache fill failed", "subscription_id", sub.ID, "error", err)
		return
	}
	if !stored {
		s.log.DebugContext(ctx, "skipped stale cache fill", "subscription_id", sub.ID)
	}
}

// invalidate must run after the database write it follows has committed.
func (s *SubscriptionService) invalidate(ctx context.Context, listID, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, listID, id); err != nil {
		s.log.WarnContext(ctx, "cache invalidate failed", "subscription_id", id, "error", err)
	}
}

// ToCached converts a Subscription to its Redis read model.
func ToCached(sub *models.Subscription) *pkgcache.CachedSubscription {
	return &pkgcache.CachedSubscription{
		ID:           sub.ID,
		ListID:       sub.ListID,
		Email:        sub.Email.String(),
		Name:         sub.Name.String(),
		Status:       string(sub.Status),
		SubscribedAt: sub.SubscribedAt,
	}
}
