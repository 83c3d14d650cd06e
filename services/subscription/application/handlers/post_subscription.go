package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/errhttp"
	"github.com/ghuser/newsletter/pkg/httpx"
	pkgvalidator "github.com/ghuser/newsletter/pkg/validator"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

// CreateSubscriptionRequest is the request body for POST /subscriptions.
type CreateSubscriptionRequest struct {
	ListID string `json:"list_id" validate:"required,uuid"                example:"550e8400-e29b-41d4-a716-446655440000"`
	Email  string `json:"email"   validate:"required,email,max=254"       example:"ursula@example.com"`
	Name   string `json:"name"    validate:"required,subscriber_name"     example:"Ursula Le Guin"`
} // @name CreateSubscriptionRequest

// PostSubscriptionHandler handles POST /subscriptions requests.
type PostSubscriptionHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewPostSubscriptionHandler returns a PostSubscriptionHandler backed by the given services.
func NewPostSubscriptionHandler(svc *appsvcs.Services, isProduction bool) *PostSubscriptionHandler {
	return &PostSubscriptionHandler{svc: svc, isProduction: isProduction}
}

// Execute signs a subscriber up to a list. Public: no session required.
//
//	@Summary		Subscribe
//	@Description	Signs a subscriber up to a newsletter list. The subscription starts pending confirmation.
//	@Tags			subscriptions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSubscriptionRequest	true	"Subscription request"
//	@Success		201		{object}	SubscriptionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/subscriptions [post]
func (h *PostSubscriptionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateSubscriptionRequest](w, r)
	if !ok {
		return
	}

	listID, err := uuid.Parse(req.ListID)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid list_id")
		return
	}

	sub, err := h.svc.Subscription.Subscribe(r.Context(), listID, req.Email, req.Name)
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	httpx.Created(w, "/api/subscriptions/"+sub.ID.String(), toResponse(sub))
}
