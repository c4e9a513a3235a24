package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/swdadsa/Shoppping-system-frontend/internal/cart"
	"github.com/swdadsa/Shoppping-system-frontend/internal/checkout"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

type CheckoutHandler struct {
	flow    *checkout.Flow
	carts   *cart.Registry
	timeout time.Duration
}

func NewCheckoutHandler(flow *checkout.Flow, carts *cart.Registry, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		flow:    flow,
		carts:   carts,
		timeout: timeout,
	}
}

type confirmRequestDTO struct {
	Method  string `json:"method"`
	Address string `json:"address"`
}

// POST /api/checkout
//
// Snapshots the current cart into the checkout slot. Re-entering
// checkout overwrites whatever an earlier run left there.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := sessionFromContext(r.Context())
	c := h.carts.For(sess)
	total, items := c.Snapshot()
	if len(items) == 0 {
		// Cold coordinator (fresh process or new session): pull the
		// cart before declaring it empty.
		if err := c.Load(ctx); err != nil {
			respondDomainError(w, err)
			return
		}
		total, items = c.Snapshot()
	}

	payload, err := h.flow.Begin(ctx, sess, total, items)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload)
}

// GET /api/checkout/payment
func (h *CheckoutHandler) PreparePayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	view, err := h.flow.PreparePayment(ctx, sessionFromContext(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /api/checkout/payment
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req confirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	redirectURL, err := h.flow.ConfirmAndInitiate(ctx, sessionFromContext(r.Context()), domain.PaymentMethod(req.Method), req.Address)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"redirect_url": redirectURL})
}

// GET /api/checkout/result?transactionId=...
func (h *CheckoutHandler) Result(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	transactionID := r.URL.Query().Get("transactionId")
	result, err := h.flow.ResolveResult(ctx, sessionFromContext(r.Context()), transactionID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
