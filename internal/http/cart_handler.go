package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/cart"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

type CartHandler struct {
	carts   *cart.Registry
	mirror  *cart.CountMirror
	timeout time.Duration
}

// mirror may be nil; the count read then always goes through the
// coordinator.
func NewCartHandler(carts *cart.Registry, mirror *cart.CountMirror, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		mirror:  mirror,
		timeout: timeout,
	}
}

type cartResponseDTO struct {
	Items     []domain.CartItem    `json:"items"`
	Aggregate domain.CartAggregate `json:"aggregate"`
}

type addItemRequestDTO struct {
	ItemID int64 `json:"item_id"`
	Amount int   `json:"amount"`
}

type updateQuantityRequestDTO struct {
	Movement string `json:"movement"`
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c := h.carts.For(sessionFromContext(r.Context()))
	if err := c.Load(ctx); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: c.Items(), Aggregate: c.Aggregate()})
}

// GET /api/cart/count
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := sessionFromContext(r.Context())
	if sess.Anonymous() {
		respondJSON(w, http.StatusOK, map[string]int{"count": 0})
		return
	}

	if h.mirror != nil {
		if count, ok := h.mirror.Get(ctx, sess.UserID); ok {
			respondJSON(w, http.StatusOK, map[string]int{"count": count})
			return
		}
	}

	c := h.carts.For(sess)
	if err := c.Load(ctx); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": c.Aggregate().Count})
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be positive")
		return
	}
	if req.Amount <= 0 || req.Amount > 99 {
		respondError(w, http.StatusBadRequest, "invalid_amount", "amount must be between 1 and 99")
		return
	}

	c := h.carts.For(sessionFromContext(r.Context()))
	if err := c.Add(ctx, req.ItemID, req.Amount); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int{"count": c.Aggregate().Count})
}

// PATCH /api/cart/items/{item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	movement := api.Movement(req.Movement)
	if movement != api.MovementIncrease && movement != api.MovementDecrease {
		respondError(w, http.StatusBadRequest, "invalid_movement", `movement must be "+" or "-"`)
		return
	}

	c := h.carts.For(sessionFromContext(r.Context()))
	if err := c.ChangeQuantity(ctx, itemID, movement); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: c.Items(), Aggregate: c.Aggregate()})
}

// DELETE /api/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	c := h.carts.For(sessionFromContext(r.Context()))
	if err := c.Remove(ctx, itemID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: c.Items(), Aggregate: c.Aggregate()})
}

func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	itemIDStr := chi.URLParam(r, "item_id")
	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return 0, false
	}
	return itemID, true
}
