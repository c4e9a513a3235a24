package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type OrderClient struct {
	c *Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

type OrderSummary struct {
	ID         int64     `json:"id"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderDetail struct {
	ID       int64  `json:"id"`
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Amount   int    `json:"amount"`
	Price    int64  `json:"price"`
}

func (oc *OrderClient) Index(ctx context.Context, token string, userID int64) ([]OrderSummary, error) {
	var orders []OrderSummary
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	if err := oc.c.do(ctx, http.MethodGet, "/api/orderList/index", token, q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (oc *OrderClient) Detail(ctx context.Context, token string, orderListID int64) ([]OrderDetail, error) {
	var details []OrderDetail
	q := url.Values{"order_list_id": {strconv.FormatInt(orderListID, 10)}}
	if err := oc.c.do(ctx, http.MethodGet, "/api/orderList/indexDetail", token, q, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}
