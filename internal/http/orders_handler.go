package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/session"
)

type OrdersAPI interface {
	Index(ctx context.Context, token string, userID int64) ([]api.OrderSummary, error)
	Detail(ctx context.Context, token string, orderListID int64) ([]api.OrderDetail, error)
}

type OrdersHandler struct {
	orders  OrdersAPI
	timeout time.Duration
}

func NewOrdersHandler(orders OrdersAPI, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// GET /api/orders
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := sessionFromContext(r.Context())
	if sess.Anonymous() {
		respondDomainError(w, session.ErrNoSession)
		return
	}

	orders, err := h.orders.Index(ctx, sess.Token, sess.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// GET /api/orders/{order_id}
func (h *OrdersHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := sessionFromContext(r.Context())
	if sess.Anonymous() {
		respondDomainError(w, session.ErrNoSession)
		return
	}

	orderIDStr := chi.URLParam(r, "order_id")
	orderID, err := strconv.ParseInt(orderIDStr, 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	details, err := h.orders.Detail(ctx, sess.Token, orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"details": details})
}
