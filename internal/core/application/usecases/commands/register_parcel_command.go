package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrRegisterParcelCommandIsNotConstructed = errors.New(
	"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
)

// RegisterParcelCommand asks to register an incoming parcel for a recipient.
//
//	cmd, err := NewRegisterParcelCommand(kernel.NewUUID(), "DHL-1", "Amazon", "Reception", recipientID, "")
//	if err != nil {
//	    return err
//	}
//	registered, err := handler.Handle(ctx, cmd)
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	trackingNumber string
	sender         string
	pickupPoint    string
	recipientID    kernel.UUID
	photoReference string

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand validates the request. Field level rules (blank
// strings) are enforced again by the aggregate.
func NewRegisterParcelCommand(
	parcelID kernel.UUID,
	trackingNumber string,
	sender string,
	pickupPoint string,
	recipientID kernel.UUID,
	photoReference string,
) (RegisterParcelCommand, error) {
	cmd := RegisterParcelCommand{
		trackingNumber: trackingNumber,
		sender:         sender,
		pickupPoint:    pickupPoint,
		photoReference: photoReference,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setRecipientID(recipientID),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// ParcelID returns the id the parcel will be stored under.
func (c RegisterParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// TrackingNumber returns the carrier's tracking number.
func (c RegisterParcelCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Sender returns who shipped the parcel.
func (c RegisterParcelCommand) Sender() string {
	return c.sender
}

// PickupPoint returns where the parcel is kept.
func (c RegisterParcelCommand) PickupPoint() string {
	return c.pickupPoint
}

// RecipientID returns the employee the parcel is addressed to.
func (c RegisterParcelCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

// PhotoReference returns the stored photo name, empty when none was uploaded.
func (c RegisterParcelCommand) PhotoReference() string {
	return c.photoReference
}

func (c *RegisterParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *RegisterParcelCommand) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipientId", err)
	}
	c.recipientID = id
	return nil
}
