package interfaces

import (
	"context"

	"satici_paneli/internal/domain/entities"
)

// IVendorRepository reads vendor records for identity resolution. Vendor
// lifecycle (registration, review, profile edits) is owned elsewhere.
type IVendorRepository interface {
	GetByID(ctx context.Context, id string) (entities.Vendor, error)
}
