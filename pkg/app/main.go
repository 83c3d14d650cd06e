package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/newsletter/pkg/cache"
	"github.com/ghuser/newsletter/pkg/config"
	"github.com/ghuser/newsletter/pkg/database"
	"github.com/ghuser/newsletter/pkg/events"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all bounded contexts.
// Pass it to each context's route or consumer registration during startup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "subscription created", "subscription_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when Temporal is disabled
	SessionStore   sessions.Store            // nil in worker process
}

// IsProduction reports whether error responses must hide internal details.
func (a *Application) IsProduction() bool {
	return a.Config != nil && a.Config.Environment == config.EnvProduction
}
