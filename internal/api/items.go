package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

type ItemsClient struct {
	c *Client
}

func NewItemsClient(c *Client) *ItemsClient {
	return &ItemsClient{c: c}
}

func (ic *ItemsClient) Index(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := ic.c.do(ctx, http.MethodGet, "/api/items/index", "", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (ic *ItemsClient) Show(ctx context.Context, itemID int64) (domain.Item, error) {
	var item domain.Item
	q := url.Values{"id": {strconv.FormatInt(itemID, 10)}}
	if err := ic.c.do(ctx, http.MethodGet, "/api/items/show", "", q, nil, &item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}
