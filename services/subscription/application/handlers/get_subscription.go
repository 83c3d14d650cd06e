package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/auth"
	"github.com/ghuser/newsletter/pkg/errhttp"
	"github.com/ghuser/newsletter/pkg/httpx"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

// GetSubscriptionHandler handles GET /subscriptions/{id} requests.
type GetSubscriptionHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewGetSubscriptionHandler returns a GetSubscriptionHandler backed by the given services.
func NewGetSubscriptionHandler(svc *appsvcs.Services, isProduction bool) *GetSubscriptionHandler {
	return &GetSubscriptionHandler{svc: svc, isProduction: isProduction}
}

// Execute returns one subscription of the session's list.
//
//	@Summary		Get subscription
//	@Description	Returns a subscription belonging to the authenticated list
//	@Tags			subscriptions
//	@Produce		json
//	@Param			id	path		string	true	"Subscription ID"
//	@Success		200	{object}	SubscriptionResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/subscriptions/{id} [get]
func (h *GetSubscriptionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	listID, err := auth.ListIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid subscription id")
		return
	}

	sub, err := h.svc.Subscription.GetByID(r.Context(), listID, id)
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(sub))
}
