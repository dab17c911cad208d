package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrInvalidVendorID = errors.New("invalid vendor id")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidOrder    = errors.New("invalid order payload")
	ErrOrderConflict   = errors.New("order modified concurrently")
)

// InvalidTransitionError rejects a status move not present in the allowed-set
// table. It carries both endpoints so the panel can render the localized
// message verbatim.
type InvalidTransitionError struct {
	From entities.OrderStatus
	To   entities.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s durumundan %s durumuna geçiş yapılamaz", e.From, e.To)
}

// ListQuery carries the listing filters and pagination of GET /orders.
type ListQuery struct {
	Filter interfaces.OrderFilter
	Page   int
	Limit  int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

type OrderPage struct {
	Orders     []entities.Order `json:"orders"`
	Pagination Pagination       `json:"pagination"`
}

// IOrderUseCase exposes the order lifecycle operations.
//
//   - UpdateStatus is the only write path that mutates an order's status.
//   - CreateOrder is the ingestion path: it assigns the order number and
//     seeds the status history.
type IOrderUseCase interface {
	CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error)
	GetOrder(ctx context.Context, vendorID, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context, vendorID string, q ListQuery) (OrderPage, error)
	UpdateStatus(ctx context.Context, vendorID, orderID string, target entities.OrderStatus, note string) (entities.Order, error)
	GetStats(ctx context.Context, vendorID string, from, to *time.Time) (entities.OrderStats, error)
}

type OrderUseCase struct {
	repo interfaces.IOrderRepository
	now  func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, now: time.Now}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	o.VendorID = strings.TrimSpace(o.VendorID)
	if o.VendorID == "" {
		return entities.Order{}, ErrInvalidVendorID
	}
	if len(o.Items) == 0 {
		return entities.Order{}, ErrInvalidOrder
	}
	for _, it := range o.Items {
		if it.ProductID == "" || it.Name == "" || it.Quantity < 1 || it.UnitPrice < 0 || it.TotalPrice < 0 {
			return entities.Order{}, ErrInvalidOrder
		}
	}
	// Amounts are trusted as given; the engine never recomputes line totals
	// or cross-checks total against subtotal plus delivery fee.
	if o.Subtotal < 0 || o.DeliveryFee < 0 || o.Total < 0 {
		return entities.Order{}, ErrInvalidOrder
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = entities.PaymentStatusPending
	}
	if !o.PaymentStatus.Valid() {
		return entities.Order{}, ErrInvalidOrder
	}
	if o.Status == "" {
		o.Status = entities.OrderStatusPending
	}
	if !o.Status.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}

	now := u.now().UTC()
	o.ID = uuid.NewString()
	if o.OrderNumber == "" {
		o.OrderNumber = entities.NewOrderNumber(now)
	}
	o.StatusHistory = []entities.StatusChange{{Status: o.Status, ChangedAt: now}}
	o.Version = 1
	o.CreatedAt = now
	o.UpdatedAt = now
	return u.repo.Create(ctx, o)
}

func (u *OrderUseCase) GetOrder(ctx context.Context, vendorID, orderID string) (entities.Order, error) {
	order, err := u.loadOwned(ctx, vendorID, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (u *OrderUseCase) ListOrders(ctx context.Context, vendorID string, q ListQuery) (OrderPage, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return OrderPage{}, ErrInvalidVendorID
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 50
	}

	orders, err := u.repo.ListByVendor(ctx, vendorID, q.Filter)
	if err != nil {
		return OrderPage{}, err
	}

	total := int64(len(orders))
	start := (q.Page - 1) * q.Limit
	if start > len(orders) {
		start = len(orders)
	}
	end := start + q.Limit
	if end > len(orders) {
		end = len(orders)
	}

	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}

	page := orders[start:end]
	if page == nil {
		page = []entities.Order{}
	}
	return OrderPage{
		Orders: page,
		Pagination: Pagination{
			Total: total,
			Page:  q.Page,
			Limit: q.Limit,
			Pages: pages,
		},
	}, nil
}

// UpdateStatus guards the state machine. The repository call is conditioned
// on the version read here, so two concurrent transitions cannot both land:
// the loser surfaces as ErrOrderConflict.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, vendorID, orderID string, target entities.OrderStatus, note string) (entities.Order, error) {
	if !target.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}

	order, err := u.loadOwned(ctx, vendorID, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if !order.Status.CanTransitionTo(target) {
		return entities.Order{}, &InvalidTransitionError{From: order.Status, To: target}
	}

	change := entities.StatusChange{
		Status:    target,
		ChangedAt: u.now().UTC(),
		Note:      note,
	}
	updated, err := u.repo.UpdateStatus(ctx, order.ID, target, change, order.Version)
	if err != nil {
		return entities.Order{}, err
	}
	if updated.ID == "" {
		return entities.Order{}, ErrOrderConflict
	}
	return updated, nil
}

func (u *OrderUseCase) GetStats(ctx context.Context, vendorID string, from, to *time.Time) (entities.OrderStats, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return entities.OrderStats{}, ErrInvalidVendorID
	}

	orders, err := u.repo.ListByVendor(ctx, vendorID, interfaces.OrderFilter{From: from, To: to})
	if err != nil {
		return entities.OrderStats{}, err
	}

	stats := entities.OrderStats{StatusCounts: map[string]int64{}}
	for _, o := range orders {
		stats.TotalOrders++
		stats.TotalRevenue += o.Total
		stats.StatusCounts[string(o.Status)]++
	}
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	return stats, nil
}

// loadOwned resolves an order scoped to the calling vendor. A record owned by
// another vendor reads as not found so existence never leaks across tenants.
func (u *OrderUseCase) loadOwned(ctx context.Context, vendorID, orderID string) (entities.Order, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return entities.Order{}, ErrInvalidVendorID
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	order, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.ID == "" || order.VendorID != vendorID {
		return entities.Order{}, ErrOrderNotFound
	}
	return order, nil
}
