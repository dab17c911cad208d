package interfaces

import (
	"context"

	"satici_paneli/internal/domain/entities"
)

// IProductStatsRepository is the dashboard's read into the product catalog:
// total, active and low-stock counts for one vendor.
type IProductStatsRepository interface {
	GetStats(ctx context.Context, vendorID string) (entities.ProductStats, error)
}
