package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// Movement is the backend's quantity-change direction.
type Movement string

const (
	MovementIncrease Movement = "+"
	MovementDecrease Movement = "-"
)

type CartClient struct {
	c *Client
}

func NewCartClient(c *Client) *CartClient {
	return &CartClient{c: c}
}

// Show fetches the full cart item list.
func (cc *CartClient) Show(ctx context.Context, token string, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	if err := cc.c.do(ctx, http.MethodGet, "/api/cart/show", token, q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Count sums item quantities; the backend owns canonical amounts, so
// the count always derives from a fresh Show.
func (cc *CartClient) Count(ctx context.Context, token string, userID int64) (int, error) {
	items, err := cc.Show(ctx, token, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Amount
	}
	return count, nil
}

type storeRequest struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
	Amount int   `json:"amount"`
}

func (cc *CartClient) Store(ctx context.Context, token string, userID, itemID int64, amount int) error {
	body := storeRequest{UserID: userID, ItemID: itemID, Amount: amount}
	return cc.c.do(ctx, http.MethodPost, "/api/cart/store", token, nil, body, nil)
}

type updateRequest struct {
	UserID   int64    `json:"user_id"`
	ItemID   int64    `json:"item_id"`
	Movement Movement `json:"movement"`
}

func (cc *CartClient) Update(ctx context.Context, token string, userID, itemID int64, movement Movement) error {
	body := updateRequest{UserID: userID, ItemID: itemID, Movement: movement}
	return cc.c.do(ctx, http.MethodPatch, "/api/cart/update", token, nil, body, nil)
}

type deleteRequest struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
}

func (cc *CartClient) Remove(ctx context.Context, token string, userID, itemID int64) error {
	body := deleteRequest{UserID: userID, ItemID: itemID}
	return cc.c.do(ctx, http.MethodDelete, "/api/cart/delete", token, nil, body, nil)
}
