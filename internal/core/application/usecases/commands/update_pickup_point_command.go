package commands

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrUpdatePickupPointCommandIsNotConstructed = errors.New(
	"UpdatePickupPointCommand must be created via NewUpdatePickupPointCommand constructor",
)

// UpdatePickupPointCommand changes some attributes of a point. Latitude and
// longitude must be supplied together.
type UpdatePickupPointCommand struct { //nolint:recvcheck //using for validation
	pointID kernel.UUID
	changes pickuppoint.Changes

	guard guard.ConstructorGuard
}

// NewUpdatePickupPointCommand builds a partial update. Nil arguments leave the
// attribute unchanged.
//
// Returns:
//   - UpdatePickupPointCommand: the command
//   - error: ValueIsRequired for a blank name, a lone coordinate or no change at
//     all; ValueIsOutOfRange for coordinates out of range
func NewUpdatePickupPointCommand(
	pointID kernel.UUID,
	name *string,
	latitude, longitude *float64,
	acceptanceRadiusMeters *float64,
) (UpdatePickupPointCommand, error) {
	if err := pointID.Validate(); err != nil {
		return UpdatePickupPointCommand{}, err
	}

	changes := pickuppoint.Changes{AcceptanceRadiusMeters: acceptanceRadiusMeters}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return UpdatePickupPointCommand{}, errs.NewValueIsRequiredError("name")
		}
		changes.Name = name
	}

	switch {
	case latitude != nil && longitude != nil:
		location, err := kernel.NewGeoPoint(*latitude, *longitude)
		if err != nil {
			return UpdatePickupPointCommand{}, err
		}
		changes.Location = &location
	case latitude != nil:
		return UpdatePickupPointCommand{}, errs.NewValueIsRequiredError("longitude")
	case longitude != nil:
		return UpdatePickupPointCommand{}, errs.NewValueIsRequiredError("latitude")
	}

	if changes.Name == nil && changes.Location == nil && changes.AcceptanceRadiusMeters == nil {
		return UpdatePickupPointCommand{}, errs.NewValueIsRequiredErrorWithCause("changes", errors.New("nothing to update"))
	}

	return UpdatePickupPointCommand{
		pointID: pointID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePickupPointCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePickupPointCommandIsNotConstructed)
}

// PointID returns the point to update.
func (c UpdatePickupPointCommand) PointID() kernel.UUID {
	return c.pointID
}

// Changes returns the attributes to overwrite.
func (c UpdatePickupPointCommand) Changes() pickuppoint.Changes {
	return c.changes
}
