package services

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"
)

// NearestResult is the outcome of a nearest pickup point search. Found is false when
// no point covers the origin; that is a normal answer, not an error.
type NearestResult struct {
	Found          bool
	Point          *pickuppoint.PickupPoint
	DistanceMeters float64
}

// PickupPointLocator finds the closest pickup point whose acceptance radius covers
// a location. It is a linear scan; the directories it serves are small.
//
//	locator := services.NewPickupPointLocator()
//	result := locator.FindNearest(origin, points)
//	if !result.Found {
//	    // no point within its own radius
//	}
type PickupPointLocator struct{}

// NewPickupPointLocator creates a PickupPointLocator.
func NewPickupPointLocator() PickupPointLocator {
	return PickupPointLocator{}
}

// FindNearest scans points in slice order. A point qualifies when its distance to
// origin is at most its own acceptance radius. The qualifying point with the
// smallest distance wins; on equal distances the earlier point is kept. Points that
// were not properly constructed are skipped.
func (PickupPointLocator) FindNearest(origin kernel.GeoPoint, points []*pickuppoint.PickupPoint) NearestResult {
	var best NearestResult

	for _, p := range points {
		if p.Validate() != nil {
			continue
		}

		d := p.DistanceTo(origin)
		if !p.Covers(d) {
			continue
		}

		if !best.Found || d < best.DistanceMeters {
			best = NearestResult{Found: true, Point: p, DistanceMeters: d}
		}
	}

	return best
}
