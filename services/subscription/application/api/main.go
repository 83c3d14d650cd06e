package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/newsletter/pkg/app"
	"github.com/ghuser/newsletter/pkg/auth"
	"github.com/ghuser/newsletter/pkg/logger"
	"github.com/ghuser/newsletter/services/subscription/application/handlers"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

// SubscriptionRoutes registers subscription endpoints on the provided chi router.
func SubscriptionRoutes(r chi.Router, a *app.Application) error {
	svcs, err := appsvcs.New(a)
	if err != nil {
		return fmt.Errorf("subscription services: %w", err)
	}
	return Mount(r, svcs, a.SessionStore, a.Logger, a.IsProduction())
}

// Mount registers the subscription handlers backed by svcs.
// Sign-up is public; reads and removal require a list owner session.
func Mount(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger, isProduction bool) error {
	if err := handlers.RegisterRequestRules(); err != nil {
		return err
	}

	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/", handlers.NewPostSubscriptionHandler(svcs, isProduction).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(store, log))
			r.Get("/{id}", handlers.NewGetSubscriptionHandler(svcs, isProduction).Execute)
			r.Delete("/{id}", handlers.NewDeleteSubscriptionHandler(svcs, isProduction).Execute)
		})
	})
	return nil
}
