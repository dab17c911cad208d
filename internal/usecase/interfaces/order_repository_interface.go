package interfaces

import (
	"context"
	"time"

	"satici_paneli/internal/domain/entities"
)

// OrderFilter narrows vendor-scoped listings. Nil fields are ignored.
type OrderFilter struct {
	Status        *entities.OrderStatus
	PaymentStatus *entities.PaymentStatus
	From          *time.Time
	To            *time.Time
}

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Contract notes:
//   - GetByID returns a zero-value Order (empty ID) when nothing matches.
//   - ListByVendor returns newest first.
//   - UpdateStatus persists the new status plus exactly one appended history
//     entry, conditioned on expectedVersion; a condition miss returns a
//     zero-value Order and a nil error so the caller can map it to a
//     conflict without guessing at driver error types.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListByVendor(ctx context.Context, vendorID string, f OrderFilter) ([]entities.Order, error)
	ListRecent(ctx context.Context, vendorID string, limit int32) ([]entities.Order, error)
	CountByStatus(ctx context.Context, vendorID string, status entities.OrderStatus) (int64, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, change entities.StatusChange, expectedVersion int64) (entities.Order, error)
}
