package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrFindNearestPickupPointQueryIsNotConstructed = errors.New(
	"FindNearestPickupPointQuery must be created via NewFindNearestPickupPointQuery constructor",
)

// FindNearestPickupPointQuery looks for the closest point whose acceptance
// radius covers the given position.
//
//	query, err := NewFindNearestPickupPointQuery(52.2297, 21.0122)
//	if err != nil {
//	    return err // out-of-range coordinates
//	}
//	result, err := handler.Handle(ctx, query)
//	if !result.Found {
//	    // nobody accepts parcels here
//	}
type FindNearestPickupPointQuery struct {
	origin kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewFindNearestPickupPointQuery rejects latitudes outside [-90, 90] and
// longitudes outside [-180, 180].
func NewFindNearestPickupPointQuery(latitude, longitude float64) (FindNearestPickupPointQuery, error) {
	origin, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return FindNearestPickupPointQuery{}, err
	}

	return FindNearestPickupPointQuery{
		origin: origin,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindNearestPickupPointQuery) Validate() error {
	return q.guard.Validate(ErrFindNearestPickupPointQueryIsNotConstructed)
}

// Origin is the position the search starts from.
func (q FindNearestPickupPointQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// FindNearestPickupPointResponse reports the match. Point and DistanceMeters
// are only meaningful when Found is true.
type FindNearestPickupPointResponse struct {
	Found          bool
	Point          *PickupPointView
	DistanceMeters float64
}
