package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not built by NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

const entityName = "parcel"

// Attributes are the descriptive fields supplied when a parcel is registered.
type Attributes struct {
	TrackingNumber string
	Sender         string
	PickupPoint    string
	PhotoReference string
	RecipientID    kernel.UUID
}

// Changes lists the fields an edit may overwrite. Nil pointers leave a field untouched.
// An empty PhotoReference clears the photo.
type Changes struct {
	TrackingNumber *string
	Sender         *string
	PickupPoint    *string
	PhotoReference *string
	RecipientID    *kernel.UUID
}

// IsEmpty reports whether no field is set.
func (c Changes) IsEmpty() bool {
	return c.TrackingNumber == nil && c.Sender == nil && c.PickupPoint == nil &&
		c.PhotoReference == nil && c.RecipientID == nil
}

// ProblemReportPolicy decides from which states a problem may be reported.
type ProblemReportPolicy int

const (
	// PermissiveProblemReports allows reporting from any state, including DELIVERED.
	PermissiveProblemReports ProblemReportPolicy = iota
	// StrictProblemReports only allows reporting from REGISTERED or PROBLEM.
	StrictProblemReports
)

// Allows reports whether a problem may be reported on a parcel in status from.
func (p ProblemReportPolicy) Allows(from Status) bool {
	if p == StrictProblemReports {
		return from == Registered || from == Problem
	}
	return from.CanTransitionTo(Problem)
}

// Parcel is the aggregate root for an incoming office parcel. It owns the pickup
// code and the lifecycle status; users are referenced by ID only.
type Parcel struct {
	id                 kernel.UUID
	trackingNumber     string
	sender             string
	pickupPoint        string
	photoReference     string
	pickupCode         PickupCode
	status             Status
	recipientID        kernel.UUID
	issuedByID         *kernel.UUID
	problemDescription string
	createdAt          time.Time
	updatedAt          time.Time

	// version is the optimistic concurrency counter read from storage.
	version int

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewParcel registers a parcel: it draws a pickup code from codes, sets the status
// to REGISTERED and records a RegisteredEvent.
func NewParcel(id kernel.UUID, attrs Attributes, codes PickupCodeGenerator, now time.Time) (*Parcel, error) {
	if codes == nil {
		return nil, errs.NewValueIsRequiredError("pickupCodeGenerator")
	}

	p := &Parcel{
		status:    Registered,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(attrs.TrackingNumber),
		p.setSender(attrs.Sender),
		p.setPickupPoint(attrs.PickupPoint),
		p.setRecipientID(attrs.RecipientID),
	); err != nil {
		return nil, err
	}
	p.photoReference = strings.TrimSpace(attrs.PhotoReference)

	code, err := codes.Generate()
	if err != nil {
		return nil, err
	}
	p.pickupCode = code

	p.raise(RegisteredEvent{
		ParcelID:       p.id.String(),
		TrackingNumber: p.trackingNumber,
		RecipientID:    p.recipientID.String(),
		At:             now,
	})

	return p, nil
}

// RestoreParams carries persisted state back into an aggregate.
type RestoreParams struct {
	ID                 kernel.UUID
	TrackingNumber     string
	Sender             string
	PickupPoint        string
	PhotoReference     string
	PickupCode         string
	Status             Status
	RecipientID        kernel.UUID
	IssuedByID         *kernel.UUID
	ProblemDescription string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int
}

// RestoreParcel rebuilds a parcel from storage without recording events.
func RestoreParcel(params RestoreParams) (*Parcel, error) {
	p := &Parcel{
		photoReference:     params.PhotoReference,
		issuedByID:         params.IssuedByID,
		problemDescription: params.ProblemDescription,
		createdAt:          params.CreatedAt,
		updatedAt:          params.UpdatedAt,
		version:            params.Version,
		guard:              guard.NewConstructorGuard(),
	}

	code, codeErr := NewPickupCode(params.PickupCode)
	if err := errors.Join(
		p.setID(params.ID),
		p.setTrackingNumber(params.TrackingNumber),
		p.setSender(params.Sender),
		p.setPickupPoint(params.PickupPoint),
		p.setRecipientID(params.RecipientID),
		params.Status.Validate(),
		codeErr,
	); err != nil {
		return nil, err
	}
	p.pickupCode = code
	p.status = params.Status

	return p, nil
}

// Validate reports whether the parcel was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the carrier tracking number.
func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

// Sender returns the sending company or person.
func (p *Parcel) Sender() string {
	return p.sender
}

// PickupPoint returns the free-text place where the parcel waits.
func (p *Parcel) PickupPoint() string {
	return p.pickupPoint
}

// PhotoReference returns the stored photo path, or an empty string.
func (p *Parcel) PhotoReference() string {
	return p.photoReference
}

// PickupCode returns the secret code. Adapters decide whether to expose it.
func (p *Parcel) PickupCode() PickupCode {
	return p.pickupCode
}

// Status returns the lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// RecipientID returns the employee the parcel is addressed to.
func (p *Parcel) RecipientID() kernel.UUID {
	return p.recipientID
}

// IssuedByID returns who handed the parcel over, nil until DELIVERED.
func (p *Parcel) IssuedByID() *kernel.UUID {
	return p.issuedByID
}

// ProblemDescription returns the last reported problem.
func (p *Parcel) ProblemDescription() string {
	return p.problemDescription
}

// CreatedAt returns the registration time. Stats count parcels by it.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time of the last change. Problem lists sort by it.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version returns the optimistic concurrency counter read from storage.
func (p *Parcel) Version() int {
	return p.version
}

// IsRecipient reports whether id is the parcel recipient.
func (p *Parcel) IsRecipient(id kernel.UUID) bool {
	return p.recipientID.IsEqual(id)
}

// Edit overwrites the descriptive fields named in changes. The pickup code,
// status and audit references are never editable.
func (p *Parcel) Edit(changes Changes, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	next := *p
	var errList []error
	if changes.TrackingNumber != nil {
		errList = append(errList, next.setTrackingNumber(*changes.TrackingNumber))
	}
	if changes.Sender != nil {
		errList = append(errList, next.setSender(*changes.Sender))
	}
	if changes.PickupPoint != nil {
		errList = append(errList, next.setPickupPoint(*changes.PickupPoint))
	}
	if changes.RecipientID != nil {
		errList = append(errList, next.setRecipientID(*changes.RecipientID))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	if changes.PhotoReference != nil {
		next.photoReference = strings.TrimSpace(*changes.PhotoReference)
	}

	p.trackingNumber = next.trackingNumber
	p.sender = next.sender
	p.pickupPoint = next.pickupPoint
	p.recipientID = next.recipientID
	p.photoReference = next.photoReference
	p.updatedAt = now
	return nil
}

// Deliver hands the parcel over. It fails with InvalidState when the parcel is
// already DELIVERED, which is checked before the code, and with InvalidCode when
// supplied does not exactly match the pickup code. On failure nothing changes.
func (p *Parcel) Deliver(supplied string, actorID kernel.UUID, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status == Delivered {
		return errs.NewInvalidStateError(entityName, p.status.String(), "deliver")
	}
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	if !p.pickupCode.Matches(supplied) {
		return errs.NewInvalidCodeError("pickupCode")
	}

	next, err := p.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	p.status = next
	issuer := actorID
	p.issuedByID = &issuer
	p.updatedAt = now
	p.raise(DeliveredEvent{
		ParcelID:    p.id.String(),
		RecipientID: p.recipientID.String(),
		IssuedByID:  actorID.String(),
		At:          now,
	})
	return nil
}

// ReportProblem moves the parcel to PROBLEM and overwrites the description.
// Under StrictProblemReports a DELIVERED parcel is rejected with InvalidState.
func (p *Parcel) ReportProblem(description string, policy ProblemReportPolicy, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	if !policy.Allows(p.status) {
		return errs.NewInvalidStateError(entityName, p.status.String(), "report a problem on")
	}

	previous := p.status
	next, err := p.status.TransitionTo(Problem)
	if err != nil {
		return err
	}

	p.status = next
	p.problemDescription = description
	p.updatedAt = now
	p.raise(ProblemReportedEvent{
		ParcelID:       p.id.String(),
		PreviousStatus: previous.String(),
		Description:    description,
		At:             now,
	})
	return nil
}

// DomainEvents returns the events recorded since the aggregate was loaded.
func (p *Parcel) DomainEvents() []kernel.DomainEvent {
	return p.events
}

// ClearDomainEvents drops recorded events once they have been handed to a publisher.
func (p *Parcel) ClearDomainEvents() {
	p.events = nil
}

func (p *Parcel) raise(event kernel.DomainEvent) {
	p.events = append(p.events, event)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	p.trackingNumber = v
	return nil
}

func (p *Parcel) setSender(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("sender")
	}
	p.sender = v
	return nil
}

func (p *Parcel) setPickupPoint(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("pickupPoint")
	}
	p.pickupPoint = v
	return nil
}

func (p *Parcel) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipientId", fmt.Errorf("recipient: %w", err))
	}
	p.recipientID = id
	return nil
}
