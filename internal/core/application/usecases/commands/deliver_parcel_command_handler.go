package commands

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
)

// DeliverParcelCommandHandler performs the guarded REGISTERED -> DELIVERED transition.
//
// The parcel is read with GetForUpdate, so concurrent deliveries of the same parcel
// queue on the row lock and the second one sees DELIVERED. The version check in
// Update catches any writer that bypassed the lock. Either way at most one
// delivery succeeds.
type DeliverParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      ports.Clock
}

// NewDeliverParcelCommandHandler creates a handler for parcel delivery.
func NewDeliverParcelCommandHandler(uowFactory ParcelUoWFactory, clock ports.Clock) DeliverParcelCommandHandler {
	return DeliverParcelCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle verifies the pickup code against the freshest stored parcel and marks it
// delivered. It returns NotFound, InvalidState, InvalidCode or Conflict errors
// unchanged.
func (h DeliverParcelCommandHandler) Handle(ctx context.Context, cmd DeliverParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var delivered *parcel.Parcel
	err := inTransaction(ctx, h.uowFactory.Create(), func(uow ParcelUoW) error {
		repo := uow.ParcelRepository()
		p, err := repo.GetForUpdate(ctx, cmd.ParcelID())
		if err != nil {
			return err
		}

		if err = p.Deliver(cmd.PickupCode(), cmd.ActorID(), h.clock.Now().UTC()); err != nil {
			return err
		}

		if err = repo.Update(ctx, p); err != nil {
			return err
		}

		delivered = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return delivered, nil
}
