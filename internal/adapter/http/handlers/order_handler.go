package handlers

import (
	"context"
	"errors"
	"net/http"

	request "satici_paneli/internal/adapter/http/dto/request"
	response "satici_paneli/internal/adapter/http/dto/response"
	"satici_paneli/internal/adapter/http/middleware"
	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase"
	"satici_paneli/internal/usecase/interfaces"
	"satici_paneli/pkg"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errAuthRequired = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Yetkilendirme gerekli", http.StatusUnauthorized)

// OrderHandler handles the vendor-scoped order endpoints.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// ListOrders returns the vendor's orders, newest first, with pagination.
//
// @Summary  List orders
// @Tags     orders
// @Produce  json
// @Security Bearer
// @Param    status        query string false "lifecycle status filter"
// @Param    paymentStatus query string false "payment status filter"
// @Param    from          query string false "RFC3339 or YYYY-MM-DD"
// @Param    to            query string false "RFC3339 or YYYY-MM-DD"
// @Param    page          query int    false "page (1-based)"
// @Param    limit         query int    false "page size"
// @Success  200 {object} response.Envelope
// @Router   /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	vendor, ok := middleware.VendorFromContext(c)
	if !ok {
		c.JSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
		return
	}

	var q request.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		appErr := validationAppError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	filter, appErr := buildOrderFilter(q.Status, q.PaymentStatus, q.From, q.To)
	if appErr != nil {
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	page, err := h.usecase.ListOrders(c.Request.Context(), vendor.ID, usecase.ListQuery{
		Filter: filter,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		appErr := mapOrderError(err, "Siparişler alınamadı")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OK(response.FromOrderPage(page)))
}

// GetOrder returns one order scoped to the calling vendor.
//
// @Summary  Get order
// @Tags     orders
// @Produce  json
// @Security Bearer
// @Param    id path string true "order id"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} pkg.HTTPError
// @Router   /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	vendor, ok := middleware.VendorFromContext(c)
	if !ok {
		c.JSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
		return
	}

	order, err := h.usecase.GetOrder(c.Request.Context(), vendor.ID, c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err, "Sipariş alınamadı")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OK(gin.H{"order": response.FromOrder(order)}))
}

// CreateOrder ingests a marketplace order: assigns the order number, seeds
// the status history and persists the record.
//
// @Summary  Create order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    order body request.CreateOrderRequest true "order payload"
// @Success  201 {object} response.Envelope
// @Failure  400 {object} pkg.HTTPError
// @Router   /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	vendor, ok := middleware.VendorFromContext(c)
	if !ok {
		c.JSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
		return
	}

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := validationAppError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToOrder(vendor.ID))
	if err != nil {
		appErr := mapOrderError(err, "Sipariş oluşturulamadı")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.OKWithMessage("Sipariş oluşturuldu", gin.H{"order": response.FromOrder(order)}))
}

// UpdateOrderStatus applies one lifecycle transition. Illegal moves come back
// as 400 with both endpoints in the message; a version race is a 409.
//
// @Summary  Update order status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    id   path string                           true "order id"
// @Param    body body request.UpdateOrderStatusRequest true "target status"
// @Success  200 {object} response.Envelope
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	vendor, ok := middleware.VendorFromContext(c)
	if !ok {
		c.JSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
		return
	}

	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := validationAppError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateStatus(
		c.Request.Context(),
		vendor.ID,
		c.Param("id"),
		entities.OrderStatus(payload.Status),
		payload.Note,
	)
	if err != nil {
		appErr := mapOrderError(err, "Sipariş durumu güncellenemedi")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OKWithMessage("Sipariş durumu güncellendi", gin.H{"order": response.FromOrder(order)}))
}

// GetOrderStats aggregates totals and per-status counts over an explicit
// caller-supplied range.
//
// @Summary  Order statistics
// @Tags     orders
// @Produce  json
// @Security Bearer
// @Param    from query string false "RFC3339 or YYYY-MM-DD"
// @Param    to   query string false "RFC3339 or YYYY-MM-DD"
// @Success  200 {object} response.Envelope
// @Router   /orders/stats [get]
func (h *OrderHandler) GetOrderStats(c *gin.Context) {
	vendor, ok := middleware.VendorFromContext(c)
	if !ok {
		c.JSON(errAuthRequired.HTTPStatus, errAuthRequired.ToHTTPError())
		return
	}

	var q request.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		appErr := validationAppError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	from, err := request.ParseTime(q.From)
	if err != nil {
		appErr := pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "from", Message: "geçersiz tarih"}})
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	to, err := request.ParseTime(q.To)
	if err != nil {
		appErr := pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "to", Message: "geçersiz tarih"}})
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	stats, err := h.usecase.GetStats(c.Request.Context(), vendor.ID, from, to)
	if err != nil {
		appErr := mapOrderError(err, "İstatistikler alınamadı")
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OK(response.FromOrderStats(stats)))
}

func buildOrderFilter(status, paymentStatus, from, to string) (interfaces.OrderFilter, *pkg.AppError) {
	var f interfaces.OrderFilter

	if status != "" {
		s := entities.OrderStatus(status)
		if !s.Valid() {
			return f, pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "status", Message: "geçersiz durum"}})
		}
		f.Status = &s
	}
	if paymentStatus != "" {
		p := entities.PaymentStatus(paymentStatus)
		if !p.Valid() {
			return f, pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "paymentStatus", Message: "geçersiz ödeme durumu"}})
		}
		f.PaymentStatus = &p
	}

	fromTime, err := request.ParseTime(from)
	if err != nil {
		return f, pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "from", Message: "geçersiz tarih"}})
	}
	toTime, err := request.ParseTime(to)
	if err != nil {
		return f, pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "to", Message: "geçersiz tarih"}})
	}
	f.From = fromTime
	f.To = toTime
	return f, nil
}

// validationAppError converts a gin binding failure into the field-level 400
// the panel expects.
func validationAppError(err error) *pkg.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]pkg.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, pkg.FieldError{Field: fe.Field(), Message: fe.Tag()})
		}
		return pkg.NewValidationError("Doğrulama hatası", fields)
	}
	return pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "body", Message: err.Error()}})
}

func mapOrderError(err error, internalMessage string) *pkg.AppError {
	var ite *usecase.InvalidTransitionError
	switch {
	case errors.As(err, &ite):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", ite.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewValidationError("Doğrulama hatası", []pkg.FieldError{{Field: "status", Message: "geçersiz durum"}})
	case errors.Is(err, usecase.ErrInvalidOrder), errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidVendorID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Geçersiz istek", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Sipariş bulunamadı", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderConflict):
		return pkg.NewDomainErrorSimple("ORDER_CONFLICT", "Sipariş eşzamanlı olarak değiştirildi, lütfen tekrar deneyin", http.StatusConflict)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return pkg.NewDomainError("STORAGE_UNAVAILABLE", "Depolama hizmetine şu anda ulaşılamıyor", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", internalMessage, err, http.StatusInternalServerError)
	}
}
