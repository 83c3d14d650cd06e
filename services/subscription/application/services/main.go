package services

import (
	"go.opentelemetry.io/otel"

	"github.com/ghuser/newsletter/pkg/app"
	"github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/telemetry"
	"github.com/ghuser/newsletter/services/subscription/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Subscription *SubscriptionService
}

// New wires all subscription application services with infrastructure from the Application container.
func New(a *app.Application) (*Services, error) {
	repo := postgres.NewSubscriptionRepository(a.Db, a.EventBus)

	var subscriptionCache ReadModelCache
	if a.Redis != nil {
		subscriptionCache = cache.NewSubscriptionCache(a.Redis)
	}

	metrics, err := telemetry.NewSubscriptionMetrics(otel.Meter(telemetry.MeterName))
	if err != nil {
		return nil, err
	}

	return &Services{
		Subscription: NewSubscriptionService(repo, subscriptionCache, metrics, a.Logger),
	}, nil
}
