package commands

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// RegisterParcelCommandHandler registers parcels. The recipient must exist; the
// pickup code comes from the injected generator.
type RegisterParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	codes      parcel.PickupCodeGenerator
	clock      ports.Clock
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
func NewRegisterParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	codes parcel.PickupCodeGenerator,
	clock ports.Clock,
) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		clock:      clock,
	}
}

// Handle registers the parcel and returns it, pickup code included.
func (h RegisterParcelCommandHandler) Handle(ctx context.Context, cmd RegisterParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var registered *parcel.Parcel
	err := inTransaction(ctx, h.uowFactory.Create(), func(uow ParcelUoW) error {
		if err := ensureUserExists(ctx, uow.UserRepository(), "recipientId", cmd.RecipientID()); err != nil {
			return err
		}

		p, err := parcel.NewParcel(cmd.ParcelID(), parcel.Attributes{
			TrackingNumber: cmd.TrackingNumber(),
			Sender:         cmd.Sender(),
			PickupPoint:    cmd.PickupPoint(),
			PhotoReference: cmd.PhotoReference(),
			RecipientID:    cmd.RecipientID(),
		}, h.codes, h.clock.Now().UTC())
		if err != nil {
			return err
		}

		if err = uow.ParcelRepository().Add(ctx, p); err != nil {
			return err
		}

		registered = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return registered, nil
}

func ensureUserExists(ctx context.Context, users ports.UserRepository, paramName string, id kernel.UUID) error {
	exists, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError(paramName, id.String())
	}
	return nil
}
