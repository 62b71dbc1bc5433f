package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luxemarket/marketplace/internal/domain"
	apperrors "github.com/luxemarket/marketplace/pkg/errors"
	"github.com/luxemarket/marketplace/pkg/middleware"
)

const (
	testOrderID = "550e8400-e29b-41d4-a716-446655440010"
	testUserID  = "550e8400-e29b-41d4-a716-446655440011"
)

// setupOrderRouter creates a chi router matching the production route layout.
func setupOrderRouter(handler *OrderHandler, validate middleware.TokenValidator) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(validate))
		r.Post("/", handler.PlaceOrder)
		r.Get("/", handler.ListOrders)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))
			r.Put("/{id}/status", handler.UpdateOrderStatus)
		})
	})
	return r
}

func TestPlaceOrder_HTTP_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	body := []byte(`{"product_id":"` + testProductID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	assert.Contains(t, rec.Body.String(), `"user_id":"`+testUserID+`"`)

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestPlaceOrder_HTTP_ProductNotFound(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	products.On("GetByID", mock.Anything, testProductID).Return(nil, apperrors.ErrNotFound)

	body := []byte(`{"product_id":"` + testProductID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestPlaceOrder_HTTP_MissingProductID(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestPlaceOrder_HTTP_Unauthenticated(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	body := []byte(`{"product_id":"` + testProductID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListOrders_HTTP_ReturnsPartition(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	items := []domain.OrderListItem{
		{Order: domain.Order{ID: "o-1", Status: domain.OrderStatusPending}},
		{Order: domain.Order{ID: "o-2", Status: domain.OrderStatusDelivered}},
		{
			Order:  domain.Order{ID: "o-3", Status: domain.OrderStatusDelivered},
			Rating: &domain.Rating{ID: "r-1", OrderID: "o-3", OverallExperience: 4},
		},
	}
	orders.On("ListByUser", mock.Anything, testUserID).Return(items, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending"`)
	assert.Contains(t, rec.Body.String(), `"delivered"`)
	assert.Contains(t, rec.Body.String(), `"rated"`)
	assert.Contains(t, rec.Body.String(), `"o-1"`)
	assert.Contains(t, rec.Body.String(), `"o-3"`)

	orders.AssertExpectations(t)
}

func TestListOrders_HTTP_Unauthenticated(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	// No Authorization header: the request is rejected before any lookup.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	orders.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_HTTP_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "admin"))

	existing := &domain.Order{ID: testOrderID, UserID: testUserID, Status: domain.OrderStatusPending}
	orders.On("GetByID", mock.Anything, testOrderID).Return(existing, nil)
	orders.On("UpdateStatus", mock.Anything, testOrderID, domain.OrderStatusDelivered).Return(nil)

	body := []byte(`{"status":"delivered"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"delivered"`)

	orders.AssertExpectations(t)
}

func TestUpdateOrderStatus_HTTP_AlreadyDelivered(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "admin"))

	existing := &domain.Order{ID: testOrderID, Status: domain.OrderStatusDelivered}
	orders.On("GetByID", mock.Anything, testOrderID).Return(existing, nil)

	body := []byte(`{"status":"delivered"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_STATE", resp.Error.Code)
}

func TestUpdateOrderStatus_HTTP_NonAdminForbidden(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "buyer"))

	body := []byte(`{"status":"delivered"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_HTTP_UnsupportedStatus(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	handler := NewOrderHandler(testOrderService(orders, products), testLogger())
	router := setupOrderRouter(handler, testAuth(testUserID, "admin"))

	body := []byte(`{"status":"canceled"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}
