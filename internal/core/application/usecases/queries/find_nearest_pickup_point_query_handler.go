package queries

import (
	"context"

	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// FindNearestPickupPointQueryHandler scans the whole directory in insertion
// order. The directory is small and unindexed.
type FindNearestPickupPointQueryHandler struct {
	points  ports.PickupPointRepository
	locator services.PickupPointLocator
}

func NewFindNearestPickupPointQueryHandler(
	points ports.PickupPointRepository,
	locator services.PickupPointLocator,
) FindNearestPickupPointQueryHandler {
	return FindNearestPickupPointQueryHandler{points: points, locator: locator}
}

// Handle returns Found=false, not an error, when no point covers the origin.
func (h FindNearestPickupPointQueryHandler) Handle(
	ctx context.Context,
	query FindNearestPickupPointQuery,
) (FindNearestPickupPointResponse, error) {
	if err := query.Validate(); err != nil {
		return FindNearestPickupPointResponse{}, err
	}

	all, err := h.points.List(ctx)
	if err != nil {
		return FindNearestPickupPointResponse{}, err
	}

	nearest := h.locator.FindNearest(query.Origin(), all)
	if !nearest.Found {
		return FindNearestPickupPointResponse{Found: false}, nil
	}

	view := NewPickupPointView(nearest.Point)
	return FindNearestPickupPointResponse{
		Found:          true,
		Point:          &view,
		DistanceMeters: nearest.DistanceMeters,
	}, nil
}
