package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/newsletter/pkg/app"
	"github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/config"
	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/events"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/telemetry"
	"github.com/ghuser/newsletter/pkg/workflows"
	"github.com/ghuser/newsletter/services/subscription/application/consumers"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
	subscriptionWorkflows "github.com/ghuser/newsletter/services/subscription/application/workflows"
	subscriptionEvents "github.com/ghuser/newsletter/services/subscription/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: cfg.DatabaseMaxConns,
		MaxIdleConns: cfg.DatabaseIdleConns,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(events.OptionsFromConfig(cfg, false), log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	var temporalClient *workflows.TemporalClient
	if cfg.TemporalEnabled {
		temporalClient, err = workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, cfg.TemporalTaskQueue, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
	}

	appConfig := &app.Application{
		Config:         cfg,
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	svcs, err := appsvcs.New(appConfig)
	if err != nil {
		log.Error("failed to wire subscription services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if temporalClient != nil {
		w := temporalClient.NewWorker()
		subscriptionWorkflows.Register(w, &subscriptionWorkflows.Activities{Confirmer: svcs.Subscription})
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", temporalClient.TaskQueue)
	}

	if err := registerSubscribers(ctx, appConfig, svcs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("shutting down worker...")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more contexts publish events.
func registerSubscribers(ctx context.Context, a *app.Application, svcs *appsvcs.Services) error {
	var start consumers.ConfirmationStarter
	if a.TemporalClient != nil {
		tc := a.TemporalClient
		start = func(ctx context.Context, in subscriptionWorkflows.ConfirmSubscriptionInput) error {
			return subscriptionWorkflows.StartConfirmation(ctx, tc.Client, tc.TaskQueue, in)
		}
	}

	topic := subscriptionEvents.TopicSubscriptionCreated
	errCh, err := a.EventBus.Subscribe(ctx, topic, consumers.SubscriptionCreated(svcs.Subscription, start, a.Logger))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{topic}, "confirmation_enabled", start != nil)
	return nil
}
