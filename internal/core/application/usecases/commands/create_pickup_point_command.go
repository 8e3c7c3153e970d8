package commands

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrCreatePickupPointCommandIsNotConstructed = errors.New(
	"CreatePickupPointCommand must be created via NewCreatePickupPointCommand constructor",
)

// CreatePickupPointCommand adds a named point to the directory.
type CreatePickupPointCommand struct { //nolint:recvcheck //using for validation
	pointID                kernel.UUID
	name                   string
	location               kernel.GeoPoint
	acceptanceRadiusMeters float64

	guard guard.ConstructorGuard
}

// NewCreatePickupPointCommand validates coordinates. A nil radius falls back to
// pickuppoint.DefaultAcceptanceRadiusMeters.
func NewCreatePickupPointCommand(
	pointID kernel.UUID,
	name string,
	latitude, longitude float64,
	acceptanceRadiusMeters *float64,
) (CreatePickupPointCommand, error) {
	if err := pointID.Validate(); err != nil {
		return CreatePickupPointCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return CreatePickupPointCommand{}, errs.NewValueIsRequiredError("name")
	}

	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return CreatePickupPointCommand{}, err
	}

	radius := pickuppoint.DefaultAcceptanceRadiusMeters
	if acceptanceRadiusMeters != nil {
		radius = *acceptanceRadiusMeters
	}

	return CreatePickupPointCommand{
		pointID:                pointID,
		name:                   name,
		location:               location,
		acceptanceRadiusMeters: radius,
		guard:                  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePickupPointCommandIsNotConstructed if validation fails.
func (c CreatePickupPointCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupPointCommandIsNotConstructed)
}

// PointID returns the id the new point will be stored under.
func (c CreatePickupPointCommand) PointID() kernel.UUID {
	return c.pointID
}

// Name returns the trimmed display name.
func (c CreatePickupPointCommand) Name() string {
	return c.name
}

// Location returns the validated coordinates.
func (c CreatePickupPointCommand) Location() kernel.GeoPoint {
	return c.location
}

// AcceptanceRadiusMeters returns how far from the point a parcel may still be
// routed to it.
func (c CreatePickupPointCommand) AcceptanceRadiusMeters() float64 {
	return c.acceptanceRadiusMeters
}
