package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrDeliverParcelCommandIsNotConstructed = errors.New(
	"DeliverParcelCommand must be created via NewDeliverParcelCommand constructor",
)

// DeliverParcelCommand hands a parcel over after the collector presents its pickup code.
type DeliverParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	pickupCode string
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliverParcelCommand requires the parcel, the supplied code and the acting user.
// The code is passed through verbatim; matching is exact.
func NewDeliverParcelCommand(parcelID kernel.UUID, pickupCode string, actorID kernel.UUID) (DeliverParcelCommand, error) {
	cmd := DeliverParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setPickupCode(pickupCode),
		cmd.setActorID(actorID),
	); err != nil {
		return DeliverParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeliverParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel being handed out.
func (c DeliverParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// PickupCode returns the code the recipient presented.
func (c DeliverParcelCommand) PickupCode() string {
	return c.pickupCode
}

// ActorID returns the receptionist handing the parcel out.
func (c DeliverParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *DeliverParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *DeliverParcelCommand) setPickupCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("pickupCode")
	}
	c.pickupCode = code
	return nil
}

func (c *DeliverParcelCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	c.actorID = id
	return nil
}
