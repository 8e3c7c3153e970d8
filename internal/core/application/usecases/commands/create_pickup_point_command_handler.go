package commands

import (
	"context"

	"parcels/internal/core/domain/model/pickuppoint"
	"parcels/internal/core/ports"
)

// CreatePickupPointCommandHandler adds a point to the directory.
type CreatePickupPointCommandHandler struct {
	uowFactory PickupPointUoWFactory
	clock      ports.Clock
}

// NewCreatePickupPointCommandHandler creates the handler. The clock stamps
// creation and update times.
func NewCreatePickupPointCommandHandler(uowFactory PickupPointUoWFactory, clock ports.Clock) CreatePickupPointCommandHandler {
	return CreatePickupPointCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle stores the new point. The radius rule (> 0) is enforced by the aggregate.
func (h CreatePickupPointCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePickupPointCommand,
) (*pickuppoint.PickupPoint, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	point, err := pickuppoint.NewPickupPoint(
		cmd.PointID(),
		cmd.Name(),
		cmd.Location(),
		cmd.AcceptanceRadiusMeters(),
		h.clock.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	err = inTransaction(ctx, h.uowFactory.Create(), func(uow PickupPointUoW) error {
		return uow.PickupPointRepository().Add(ctx, point)
	})
	if err != nil {
		return nil, err
	}

	return point, nil
}
