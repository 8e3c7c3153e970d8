package commands

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
)

// EditParcelCommandHandler applies edits under the parcel row lock so an edit
// cannot interleave with a delivery.
type EditParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      ports.Clock
}

// NewEditParcelCommandHandler creates a handler for parcel edits.
func NewEditParcelCommandHandler(uowFactory ParcelUoWFactory, clock ports.Clock) EditParcelCommandHandler {
	return EditParcelCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle edits the parcel and returns its new state. A new recipient must exist.
func (h EditParcelCommandHandler) Handle(ctx context.Context, cmd EditParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var edited *parcel.Parcel
	err := inTransaction(ctx, h.uowFactory.Create(), func(uow ParcelUoW) error {
		changes := cmd.Changes()
		if changes.RecipientID != nil {
			if err := ensureUserExists(ctx, uow.UserRepository(), "recipientId", *changes.RecipientID); err != nil {
				return err
			}
		}

		repo := uow.ParcelRepository()
		p, err := repo.GetForUpdate(ctx, cmd.ParcelID())
		if err != nil {
			return err
		}

		if err = p.Edit(changes, h.clock.Now().UTC()); err != nil {
			return err
		}

		if err = repo.Update(ctx, p); err != nil {
			return err
		}

		edited = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return edited, nil
}
