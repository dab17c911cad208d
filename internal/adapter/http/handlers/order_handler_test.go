package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"satici_paneli/internal/adapter/http/handlers/mocks"
	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func approvedVendor() entities.Vendor {
	return entities.Vendor{ID: "v-1", BusinessName: "Taze Sebze", Status: entities.VendorStatusApproved}
}

// newOrderRouter wires the handler behind a stub that plants the vendor the
// way the auth middleware would.
func newOrderRouter(uc usecase.IOrderUseCase, vendor *entities.Vendor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if vendor != nil {
			c.Set("vendor", *vendor)
		}
		c.Next()
	})

	h := NewOrderHandler(uc)
	router.GET("/api/orders", h.ListOrders)
	router.POST("/api/orders", h.CreateOrder)
	router.GET("/api/orders/stats", h.GetOrderStats)
	router.GET("/api/orders/:id", h.GetOrder)
	router.PUT("/api/orders/:id/status", h.UpdateOrderStatus)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}

func sampleOrder() entities.Order {
	created := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:          "o-1",
		OrderNumber: "ORD-20240510-0042",
		VendorID:    "v-1",
		Items: []entities.OrderItem{
			{ProductID: "p-1", Name: "Domates", Unit: "kg", Quantity: 2, UnitPrice: 30, TotalPrice: 60},
		},
		Subtotal:      60,
		DeliveryFee:   10,
		Total:         70,
		PaymentStatus: entities.PaymentStatusPending,
		Status:        entities.OrderStatusPending,
		StatusHistory: []entities.StatusChange{
			{Status: entities.OrderStatusPending, ChangedAt: created},
		},
		Version:   1,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().ListOrders(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, q usecase.ListQuery) (usecase.OrderPage, error) {
				if q.Page != 2 || q.Limit != 5 {
					t.Fatalf("unexpected query: %+v", q)
				}
				if q.Filter.Status == nil || *q.Filter.Status != entities.OrderStatusPending {
					t.Fatalf("expected pending filter, got %+v", q.Filter)
				}
				return usecase.OrderPage{
					Orders:     []entities.Order{sampleOrder()},
					Pagination: usecase.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2},
				}, nil
			},
		)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders?status=pending&page=2&limit=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if body["success"] != true {
			t.Fatalf("expected success envelope, got %v", body)
		}
		data := body["data"].(map[string]any)
		orders := data["orders"].([]any)
		if len(orders) != 1 {
			t.Fatalf("expected 1 order, got %d", len(orders))
		}
		pagination := data["pagination"].(map[string]any)
		if pagination["total"].(float64) != 6 || pagination["pages"].(float64) != 2 {
			t.Fatalf("unexpected pagination: %v", pagination)
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders?status=shipped", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if body["success"] != false || body["message"] != "Doğrulama hatası" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("invalid from date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		rec, _ := doRequest(t, router, http.MethodGet, "/api/orders?from=gecen-hafta", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		router := newOrderRouter(uc, nil)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if body["message"] != "Yetkilendirme gerekli" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})

	t.Run("storage timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().ListOrders(gomock.Any(), "v-1", gomock.Any()).Return(usecase.OrderPage{}, context.DeadlineExceeded)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		if body["code"] != "STORAGE_UNAVAILABLE" {
			t.Fatalf("unexpected code: %v", body["code"])
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().GetOrder(gomock.Any(), "v-1", "o-1").Return(sampleOrder(), nil)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders/o-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		order := body["data"].(map[string]any)["order"].(map[string]any)
		if order["orderNumber"] != "ORD-20240510-0042" {
			t.Fatalf("unexpected order payload: %v", order)
		}
		if order["total"].(float64) != 70 {
			t.Fatalf("unexpected total: %v", order["total"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().GetOrder(gomock.Any(), "v-1", "missing").Return(entities.Order{}, usecase.ErrOrderNotFound)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if body["message"] != "Sipariş bulunamadı" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.VendorID != "v-1" {
					t.Fatalf("expected vendor scoping, got %q", o.VendorID)
				}
				if len(o.Items) != 1 || o.Items[0].ProductID != "p-1" {
					t.Fatalf("unexpected items: %+v", o.Items)
				}
				return sampleOrder(), nil
			},
		)

		payload := `{
			"customerInfo": {"name": "Ayşe", "phone": "05551112233", "address": "Kadıköy"},
			"items": [{"productId": "p-1", "name": "Domates", "unit": "kg", "quantity": 2, "unitPrice": 30, "totalPrice": 60}],
			"subtotal": 60,
			"deliveryFee": 10,
			"total": 70
		}`
		rec, body := doRequest(t, router, http.MethodPost, "/api/orders", payload)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if body["message"] != "Sipariş oluşturuldu" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		rec, body := doRequest(t, router, http.MethodPost, "/api/orders", `{"items": []}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if body["message"] != "Doğrulama hatası" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
		if _, ok := body["errors"]; !ok {
			t.Fatalf("expected field errors, got %v", body)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		rec, _ := doRequest(t, router, http.MethodPost, "/api/orders", `{"items": [`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		updated := sampleOrder()
		updated.Status = entities.OrderStatusPreparing
		uc.EXPECT().UpdateStatus(gomock.Any(), "v-1", "o-1", entities.OrderStatusPreparing, "hazırlanıyor").Return(updated, nil)

		rec, body := doRequest(t, router, http.MethodPut, "/api/orders/o-1/status", `{"status": "preparing", "note": "hazırlanıyor"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if body["message"] != "Sipariş durumu güncellendi" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
		order := body["data"].(map[string]any)["order"].(map[string]any)
		if order["status"] != "preparing" {
			t.Fatalf("unexpected status: %v", order["status"])
		}
	})

	t.Run("missing status field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		rec, _ := doRequest(t, router, http.MethodPut, "/api/orders/o-1/status", `{"note": "x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("illegal transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().UpdateStatus(gomock.Any(), "v-1", "o-1", entities.OrderStatusDelivered, "").Return(
			entities.Order{},
			&usecase.InvalidTransitionError{From: entities.OrderStatusPending, To: entities.OrderStatusDelivered},
		)

		rec, body := doRequest(t, router, http.MethodPut, "/api/orders/o-1/status", `{"status": "delivered"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if body["code"] != "INVALID_TRANSITION" {
			t.Fatalf("unexpected code: %v", body["code"])
		}
		if body["message"] != "pending durumundan delivered durumuna geçiş yapılamaz" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().UpdateStatus(gomock.Any(), "v-1", "o-1", entities.OrderStatus("shipped"), "").Return(entities.Order{}, usecase.ErrInvalidStatus)

		rec, body := doRequest(t, router, http.MethodPut, "/api/orders/o-1/status", `{"status": "shipped"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if body["message"] != "Doğrulama hatası" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().UpdateStatus(gomock.Any(), "v-1", "missing", entities.OrderStatusPreparing, "").Return(entities.Order{}, usecase.ErrOrderNotFound)

		rec, _ := doRequest(t, router, http.MethodPut, "/api/orders/missing/status", `{"status": "preparing"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("version conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().UpdateStatus(gomock.Any(), "v-1", "o-1", entities.OrderStatusPreparing, "").Return(entities.Order{}, usecase.ErrOrderConflict)

		rec, body := doRequest(t, router, http.MethodPut, "/api/orders/o-1/status", `{"status": "preparing"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if body["code"] != "ORDER_CONFLICT" {
			t.Fatalf("unexpected code: %v", body["code"])
		}
	})

	t.Run("unexpected error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().UpdateStatus(gomock.Any(), "v-1", "o-1", entities.OrderStatusPreparing, "").Return(entities.Order{}, errors.New("boom"))

		rec, body := doRequest(t, router, http.MethodPut, "/api/orders/o-1/status", `{"status": "preparing"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if body["message"] != "Sipariş durumu güncellenemedi" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})
}

func TestOrderHandler_GetOrderStats(t *testing.T) {
	t.Run("success with range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		uc.EXPECT().GetStats(gomock.Any(), "v-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, from, to *time.Time) (entities.OrderStats, error) {
				if from == nil || from.Format("2006-01-02") != "2024-05-01" {
					t.Fatalf("unexpected from: %v", from)
				}
				if to != nil {
					t.Fatalf("expected nil to, got %v", to)
				}
				return entities.OrderStats{
					TotalOrders:   3,
					TotalRevenue:  180,
					AvgOrderValue: 60,
					StatusCounts:  map[string]int64{"pending": 1, "delivered": 1, "cancelled": 1},
				}, nil
			},
		)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders/stats?from=2024-05-01", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := body["data"].(map[string]any)
		stats := data["stats"].(map[string]any)
		if stats["totalRevenue"].(float64) != 180 {
			t.Fatalf("unexpected revenue: %v", stats["totalRevenue"])
		}
		counts := data["statusCounts"].(map[string]any)
		if counts["cancelled"].(float64) != 1 {
			t.Fatalf("unexpected status counts: %v", counts)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		vendor := approvedVendor()
		router := newOrderRouter(uc, &vendor)

		rec, body := doRequest(t, router, http.MethodGet, "/api/orders/stats?from=dun", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if body["message"] != "Doğrulama hatası" {
			t.Fatalf("unexpected message: %v", body["message"])
		}
	})
}
