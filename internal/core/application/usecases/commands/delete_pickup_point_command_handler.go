package commands

import (
	"context"
)

// DeletePickupPointCommandHandler removes pickup points.
type DeletePickupPointCommandHandler struct {
	uowFactory PickupPointUoWFactory
}

// NewDeletePickupPointCommandHandler creates the handler.
func NewDeletePickupPointCommandHandler(uowFactory PickupPointUoWFactory) DeletePickupPointCommandHandler {
	return DeletePickupPointCommandHandler{uowFactory: uowFactory}
}

// Handle removes the point. Parcels keep their free-text pickup point and are unaffected.
func (h DeletePickupPointCommandHandler) Handle(ctx context.Context, cmd DeletePickupPointCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTransaction(ctx, h.uowFactory.Create(), func(uow PickupPointUoW) error {
		return uow.PickupPointRepository().Delete(ctx, cmd.PointID())
	})
}
