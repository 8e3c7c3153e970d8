package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"
)

// PickupPointRepository persists the pickup point directory.
type PickupPointRepository interface {
	Add(ctx context.Context, point *pickuppoint.PickupPoint) error
	Update(ctx context.Context, point *pickuppoint.PickupPoint) error
	Delete(ctx context.Context, id kernel.UUID) error

	// Get loads a point or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error)

	// GetForUpdate is Get with a row lock held until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error)

	// List returns every point in insertion order (created_at, then id). Nearest
	// search relies on this order for its tie-break.
	List(ctx context.Context) ([]*pickuppoint.PickupPoint, error)
}
