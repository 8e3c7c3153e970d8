package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery loads one parcel on behalf of a viewer. The handler applies
// the per-parcel access check and hides the pickup code where needed.
type GetParcelQuery struct {
	viewer   Viewer
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a validated query.
//
// Returns:
//   - GetParcelQuery: the query
//   - error: the joined validation errors of the viewer and the parcel id
func NewGetParcelQuery(viewer Viewer, parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := errors.Join(viewer.UserID.Validate(), parcelID.Validate()); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		viewer:   viewer,
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) Viewer() Viewer {
	return q.viewer
}

func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}
