package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/cart"
	"github.com/swdadsa/Shoppping-system-frontend/internal/checkout"
	"github.com/swdadsa/Shoppping-system-frontend/internal/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// Redirect tells the frontend where to send the user when the
	// failure is resolved by navigation (sign-in, home) rather than
	// by a toast alone.
	Redirect string `json:"redirect,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func respondRedirectError(w http.ResponseWriter, status int, code, message, redirect string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code, Redirect: redirect})
}

// respondDomainError maps the domain's sentinel errors onto the HTTP
// surface. Authentication failures carry the sign-in redirect; every
// other failure is recovered in place by the frontend.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrAuthRequired):
		// cart mutations prompt sign-in in place, they never navigate away
		respondError(w, http.StatusUnauthorized, "authentication_required",
			"please sign in to continue")
	case errors.Is(err, session.ErrNoSession):
		respondRedirectError(w, http.StatusUnauthorized, "authentication_required",
			"please sign in to continue", "/signIn")
	case errors.Is(err, cart.ErrItemBusy):
		respondError(w, http.StatusConflict, "item_busy",
			"a quantity change for this item is already in flight")
	case errors.Is(err, checkout.ErrNoPayload):
		respondError(w, http.StatusNotFound, "checkout_payload_missing",
			"no pending checkout, please start over from the cart")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "the cart is empty")
	case errors.Is(err, checkout.ErrMethodNotAvailable):
		respondError(w, http.StatusUnprocessableEntity, "method_not_available",
			"this payment method is not yet available")
	case errors.Is(err, checkout.ErrMissingTransaction):
		respondRedirectError(w, http.StatusBadRequest, "missing_transaction_id",
			"could not read the transaction id", "/")
	case errors.Is(err, api.ErrBackend):
		respondError(w, http.StatusBadGateway, "backend_error",
			"the shop backend answered with an error")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error",
			"internal server error")
	}
}
