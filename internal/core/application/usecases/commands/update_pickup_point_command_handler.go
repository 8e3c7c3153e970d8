package commands

import (
	"context"

	"parcels/internal/core/domain/model/pickuppoint"
	"parcels/internal/core/ports"
)

// UpdatePickupPointCommandHandler edits points in the directory.
type UpdatePickupPointCommandHandler struct {
	uowFactory PickupPointUoWFactory
	clock      ports.Clock
}

// NewUpdatePickupPointCommandHandler creates the handler. The clock stamps the
// update time.
func NewUpdatePickupPointCommandHandler(uowFactory PickupPointUoWFactory, clock ports.Clock) UpdatePickupPointCommandHandler {
	return UpdatePickupPointCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle applies the changes to the locked row, so two concurrent updates of one
// point never overwrite each other's fields.
func (h UpdatePickupPointCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePickupPointCommand,
) (*pickuppoint.PickupPoint, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *pickuppoint.PickupPoint
	err := inTransaction(ctx, h.uowFactory.Create(), func(uow PickupPointUoW) error {
		repo := uow.PickupPointRepository()
		point, err := repo.GetForUpdate(ctx, cmd.PointID())
		if err != nil {
			return err
		}

		if err = point.Update(cmd.Changes(), h.clock.Now().UTC()); err != nil {
			return err
		}

		if err = repo.Update(ctx, point); err != nil {
			return err
		}

		updated = point
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
