package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
	"github.com/swdadsa/Shoppping-system-frontend/internal/pricing"
)

type ItemsAPI interface {
	Index(ctx context.Context) ([]domain.Item, error)
	Show(ctx context.Context, itemID int64) (domain.Item, error)
}

type ItemsHandler struct {
	items   ItemsAPI
	calc    pricing.Calculator
	timeout time.Duration
}

func NewItemsHandler(items ItemsAPI, calc pricing.Calculator, timeout time.Duration) *ItemsHandler {
	return &ItemsHandler{
		items:   items,
		calc:    calc,
		timeout: timeout,
	}
}

type itemDTO struct {
	domain.Item
	EffectivePrice int64 `json:"effectivePrice"`
}

func (h *ItemsHandler) toDTO(item domain.Item, now time.Time) itemDTO {
	return itemDTO{
		Item:           item,
		EffectivePrice: h.calc.EffectivePrice(item.Price, item.Discounts, now),
	}
}

// GET /api/items
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.items.Index(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	now := time.Now()
	dtos := make([]itemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, h.toDTO(item, now))
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": dtos})
}

// GET /api/items/{item_id}
func (h *ItemsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemIDStr := chi.URLParam(r, "item_id")
	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	item, err := h.items.Show(ctx, itemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.toDTO(item, time.Now()))
}
