package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
)

type ordersAPIMock struct {
	orders  []api.OrderSummary
	details []api.OrderDetail
	err     error
}

func (m *ordersAPIMock) Index(ctx context.Context, token string, userID int64) ([]api.OrderSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *ordersAPIMock) Detail(ctx context.Context, token string, orderListID int64) ([]api.OrderDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.details, nil
}

func TestOrdersList_Success(t *testing.T) {
	mock := &ordersAPIMock{
		orders: []api.OrderSummary{
			{ID: 1, TotalPrice: 500},
			{ID: 2, TotalPrice: 300},
		},
	}
	handler := NewOrdersHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := signedInRequest(httptest.NewRequest("GET", "/api/orders", nil), 42)

	handler.List(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response struct {
		Orders []api.OrderSummary `json:"orders"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Orders) != 2 {
		t.Errorf("Expected 2 orders, got %d", len(response.Orders))
	}
}

func TestOrdersList_AnonymousRedirectsToSignIn(t *testing.T) {
	handler := NewOrdersHandler(&ordersAPIMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/orders", nil)

	handler.List(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Redirect != "/signIn" {
		t.Errorf("Expected redirect '/signIn', got '%s'", response.Redirect)
	}
}

func TestOrdersDetail_Success(t *testing.T) {
	mock := &ordersAPIMock{
		details: []api.OrderDetail{
			{ID: 1, ItemID: 9, ItemName: "mug", Amount: 2, Price: 120},
		},
	}
	handler := NewOrdersHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := signedInRequest(httptest.NewRequest("GET", "/api/orders/1", nil), 42)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("order_id", "1")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.Detail(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response struct {
		Details []api.OrderDetail `json:"details"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Details) != 1 || response.Details[0].ItemName != "mug" {
		t.Errorf("Expected the order lines, got %+v", response.Details)
	}
}

func TestOrdersDetail_InvalidOrderID(t *testing.T) {
	handler := NewOrdersHandler(&ordersAPIMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := signedInRequest(httptest.NewRequest("GET", "/api/orders/abc", nil), 42)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("order_id", "abc")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.Detail(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}
