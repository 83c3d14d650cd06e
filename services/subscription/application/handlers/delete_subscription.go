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

// DeleteSubscriptionHandler handles DELETE /subscriptions/{id} requests.
type DeleteSubscriptionHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewDeleteSubscriptionHandler returns a DeleteSubscriptionHandler backed by the given services.
func NewDeleteSubscriptionHandler(svc *appsvcs.Services, isProduction bool) *DeleteSubscriptionHandler {
	return &DeleteSubscriptionHandler{svc: svc, isProduction: isProduction}
}

// Execute removes a subscription from the session's list.
//
//	@Summary		Unsubscribe
//	@Description	Removes a subscription belonging to the authenticated list
//	@Tags			subscriptions
//	@Param			id	path	string	true	"Subscription ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/subscriptions/{id} [delete]
func (h *DeleteSubscriptionHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Subscription.Unsubscribe(r.Context(), listID, id); err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
