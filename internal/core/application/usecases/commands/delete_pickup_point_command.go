package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrDeletePickupPointCommandIsNotConstructed = errors.New(
	"DeletePickupPointCommand must be created via NewDeletePickupPointCommand constructor",
)

// DeletePickupPointCommand removes a point from the directory.
type DeletePickupPointCommand struct { //nolint:recvcheck //using for validation
	pointID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePickupPointCommand returns ValueIsRequired for the zero UUID.
func NewDeletePickupPointCommand(pointID kernel.UUID) (DeletePickupPointCommand, error) {
	if err := pointID.Validate(); err != nil {
		return DeletePickupPointCommand{}, err
	}

	return DeletePickupPointCommand{
		pointID: pointID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePickupPointCommand) Validate() error {
	return c.guard.Validate(ErrDeletePickupPointCommandIsNotConstructed)
}

// PointID returns the point to remove.
func (c DeletePickupPointCommand) PointID() kernel.UUID {
	return c.pointID
}
