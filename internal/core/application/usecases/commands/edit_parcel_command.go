package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrEditParcelCommandIsNotConstructed = errors.New(
	"EditParcelCommand must be created via NewEditParcelCommand constructor",
)

// EditParcelCommand overwrites descriptive fields of a parcel.
type EditParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	changes  parcel.Changes

	guard guard.ConstructorGuard
}

// NewEditParcelCommand requires at least one changed field.
func NewEditParcelCommand(parcelID kernel.UUID, changes parcel.Changes) (EditParcelCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return EditParcelCommand{}, err
	}
	if changes.IsEmpty() {
		return EditParcelCommand{}, errs.NewValueIsRequiredErrorWithCause("changes", errors.New("nothing to edit"))
	}
	if changes.RecipientID != nil {
		if err := changes.RecipientID.Validate(); err != nil {
			return EditParcelCommand{}, errs.NewValueIsRequiredErrorWithCause("recipientId", err)
		}
	}

	return EditParcelCommand{
		parcelID: parcelID,
		changes:  changes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EditParcelCommand) Validate() error {
	return c.guard.Validate(ErrEditParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel being edited.
func (c EditParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Changes returns the fields to overwrite. Nil fields stay as they are.
func (c EditParcelCommand) Changes() parcel.Changes {
	return c.changes
}
