package pickuppoint

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// DefaultAcceptanceRadiusMeters is applied when a point is created without a radius.
const DefaultAcceptanceRadiusMeters = 100.0

// ErrPickupPointIsNotConstructed is returned when a PickupPoint was not built by a constructor.
var ErrPickupPointIsNotConstructed = errors.New("PickupPoint must be created via NewPickupPoint or RestorePickupPoint")

// PickupPoint is a named physical place with a location and an acceptance radius.
// A query location counts as "at" the point when its distance is within the radius.
type PickupPoint struct {
	id                     kernel.UUID
	name                   string
	location               kernel.GeoPoint
	acceptanceRadiusMeters float64
	createdAt              time.Time
	updatedAt              time.Time

	guard guard.ConstructorGuard
}

// Changes names the fields an update overwrites. Nil pointers are left untouched.
type Changes struct {
	Name                   *string
	Location               *kernel.GeoPoint
	AcceptanceRadiusMeters *float64
}

// NewPickupPoint validates and creates a pickup point.
func NewPickupPoint(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	acceptanceRadiusMeters float64,
	now time.Time,
) (*PickupPoint, error) {
	p := &PickupPoint{
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setLocation(location),
		p.setAcceptanceRadius(acceptanceRadiusMeters),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePickupPoint rebuilds a point from storage.
func RestorePickupPoint(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	acceptanceRadiusMeters float64,
	createdAt time.Time,
	updatedAt time.Time,
) (*PickupPoint, error) {
	p, err := NewPickupPoint(id, name, location, acceptanceRadiusMeters, createdAt)
	if err != nil {
		return nil, err
	}
	p.updatedAt = updatedAt
	return p, nil
}

// Validate reports whether the point was properly constructed.
func (p *PickupPoint) Validate() error {
	if p == nil {
		return ErrPickupPointIsNotConstructed
	}
	return p.guard.Validate(ErrPickupPointIsNotConstructed)
}

// ID returns the point identifier.
func (p *PickupPoint) ID() kernel.UUID {
	return p.id
}

// Name returns the display name.
func (p *PickupPoint) Name() string {
	return p.name
}

// Location returns the point's coordinates.
func (p *PickupPoint) Location() kernel.GeoPoint {
	return p.location
}

// AcceptanceRadiusMeters is the inclusive distance bound used by nearest search.
func (p *PickupPoint) AcceptanceRadiusMeters() float64 {
	return p.acceptanceRadiusMeters
}

// CreatedAt returns when the point was added.
func (p *PickupPoint) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the point was last changed.
func (p *PickupPoint) UpdatedAt() time.Time {
	return p.updatedAt
}

// DistanceTo returns the haversine distance in meters from the point to origin.
func (p *PickupPoint) DistanceTo(origin kernel.GeoPoint) float64 {
	return kernel.Distance(p.location, origin)
}

// Covers reports whether a location at distanceMeters lies within the radius. The bound is inclusive.
func (p *PickupPoint) Covers(distanceMeters float64) bool {
	return distanceMeters <= p.acceptanceRadiusMeters
}

// Update applies changes atomically: either every named field changes or none does.
func (p *PickupPoint) Update(changes Changes, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	next := *p
	var errList []error
	if changes.Name != nil {
		errList = append(errList, next.setName(*changes.Name))
	}
	if changes.Location != nil {
		errList = append(errList, next.setLocation(*changes.Location))
	}
	if changes.AcceptanceRadiusMeters != nil {
		errList = append(errList, next.setAcceptanceRadius(*changes.AcceptanceRadiusMeters))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	next.updatedAt = now
	*p = next
	return nil
}

func (p *PickupPoint) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PickupPoint) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *PickupPoint) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}

func (p *PickupPoint) setAcceptanceRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("acceptanceRadiusMeters",
			fmt.Errorf("%v is not greater than 0", radius))
	}
	p.acceptanceRadiusMeters = radius
	return nil
}
