package request

import (
	"strings"
	"time"

	"satici_paneli/internal/domain/entities"
)

// UpdateOrderStatusRequest is the body of PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type CustomerInfoRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address" binding:"required"`
}

type OrderItemRequest struct {
	ProductID  string  `json:"productId" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	UnitPrice  float64 `json:"unitPrice" binding:"min=0"`
	TotalPrice float64 `json:"totalPrice" binding:"min=0"`
}

// CreateOrderRequest is the marketplace ingestion payload. Amounts are taken
// as given; the panel does not recompute line totals.
type CreateOrderRequest struct {
	CustomerInfo  CustomerInfoRequest `json:"customerInfo" binding:"required"`
	Items         []OrderItemRequest  `json:"items" binding:"required,min=1,dive"`
	Subtotal      float64             `json:"subtotal" binding:"min=0"`
	DeliveryFee   float64             `json:"deliveryFee" binding:"min=0"`
	Total         float64             `json:"total" binding:"min=0"`
	PaymentStatus string              `json:"paymentStatus"`
	Notes         string              `json:"notes"`
}

func (r CreateOrderRequest) ToOrder(vendorID string) entities.Order {
	items := make([]entities.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.OrderItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Unit:       it.Unit,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return entities.Order{
		VendorID: vendorID,
		CustomerInfo: entities.CustomerInfo{
			Name:    r.CustomerInfo.Name,
			Phone:   r.CustomerInfo.Phone,
			Email:   r.CustomerInfo.Email,
			Address: r.CustomerInfo.Address,
		},
		Items:         items,
		Subtotal:      r.Subtotal,
		DeliveryFee:   r.DeliveryFee,
		Total:         r.Total,
		PaymentStatus: entities.PaymentStatus(r.PaymentStatus),
		Notes:         r.Notes,
	}
}

// ListOrdersQuery binds the GET /orders query string. from/to accept RFC3339
// or plain YYYY-MM-DD values.
type ListOrdersQuery struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
	From          string `form:"from"`
	To            string `form:"to"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=50"`
}

// StatsQuery binds the GET /orders/stats query string.
type StatsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ParseTime accepts RFC3339 timestamps and bare dates. Returns nil for an
// empty value so callers can pass it straight into an optional filter.
func ParseTime(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
