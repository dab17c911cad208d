package response

import (
	"time"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase"
)

type CustomerInfoResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
}

type OrderItemResponse struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type StatusChangeResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	Note      string    `json:"note,omitempty"`
}

// OrderResponse is the wire form of an order; field names match what the
// panel front end binds against.
type OrderResponse struct {
	ID            string                 `json:"id"`
	OrderNumber   string                 `json:"orderNumber"`
	VendorID      string                 `json:"vendorId"`
	CustomerInfo  CustomerInfoResponse   `json:"customerInfo"`
	Items         []OrderItemResponse    `json:"items"`
	Subtotal      float64                `json:"subtotal"`
	DeliveryFee   float64                `json:"deliveryFee"`
	Total         float64                `json:"total"`
	PaymentStatus string                 `json:"paymentStatus"`
	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"statusHistory"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Unit:       it.Unit,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	history := make([]StatusChangeResponse, 0, len(o.StatusHistory))
	for _, sc := range o.StatusHistory {
		history = append(history, StatusChangeResponse{
			Status:    string(sc.Status),
			ChangedAt: sc.ChangedAt,
			Note:      sc.Note,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		VendorID:    o.VendorID,
		CustomerInfo: CustomerInfoResponse{
			Name:    o.CustomerInfo.Name,
			Phone:   o.CustomerInfo.Phone,
			Email:   o.CustomerInfo.Email,
			Address: o.CustomerInfo.Address,
		},
		Items:         items,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		PaymentStatus: string(o.PaymentStatus),
		Status:        string(o.Status),
		StatusHistory: history,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type PaginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

type OrderListResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

func FromOrderPage(p usecase.OrderPage) OrderListResponse {
	return OrderListResponse{
		Orders: FromOrders(p.Orders),
		Pagination: PaginationResponse{
			Total: p.Pagination.Total,
			Page:  p.Pagination.Page,
			Limit: p.Pagination.Limit,
			Pages: p.Pagination.Pages,
		},
	}
}

type OrderStatsResponse struct {
	Stats struct {
		TotalOrders   int64   `json:"totalOrders"`
		TotalRevenue  float64 `json:"totalRevenue"`
		AvgOrderValue float64 `json:"avgOrderValue"`
	} `json:"stats"`
	StatusCounts map[string]int64 `json:"statusCounts"`
}

func FromOrderStats(s entities.OrderStats) OrderStatsResponse {
	var out OrderStatsResponse
	out.Stats.TotalOrders = s.TotalOrders
	out.Stats.TotalRevenue = s.TotalRevenue
	out.Stats.AvgOrderValue = s.AvgOrderValue
	out.StatusCounts = s.StatusCounts
	if out.StatusCounts == nil {
		out.StatusCounts = map[string]int64{}
	}
	return out
}
