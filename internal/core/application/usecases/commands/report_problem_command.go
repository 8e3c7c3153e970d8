package commands

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrReportProblemCommandIsNotConstructed = errors.New(
	"ReportProblemCommand must be created via NewReportProblemCommand constructor",
)

// ReportProblemCommand flags a parcel as PROBLEM with a free-text description.
// It carries the reporting user so the handler can refuse parcels the caller
// may not see.
type ReportProblemCommand struct { //nolint:recvcheck //using for validation
	parcelID    kernel.UUID
	description string
	actorID     kernel.UUID
	actorRole   user.Role

	guard guard.ConstructorGuard
}

// NewReportProblemCommand creates a validated command.
//
// Parameters:
//   - parcelID: the parcel to flag
//   - description: non-blank text describing the problem, stored as given
//   - actorID: the authenticated user reporting the problem
//   - actorRole: that user's role, used for the per-parcel access check
//
// Returns:
//   - ReportProblemCommand: ready for ReportProblemCommandHandler.Handle
//   - error: ValueIsRequired for a blank description or missing actor, ValueIsInvalid
//     for an unknown role
func NewReportProblemCommand(
	parcelID kernel.UUID,
	description string,
	actorID kernel.UUID,
	actorRole user.Role,
) (ReportProblemCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return ReportProblemCommand{}, err
	}
	if strings.TrimSpace(description) == "" {
		return ReportProblemCommand{}, errs.NewValueIsRequiredError("description")
	}
	if err := actorID.Validate(); err != nil {
		return ReportProblemCommand{}, errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	if err := actorRole.Validate(); err != nil {
		return ReportProblemCommand{}, err
	}

	return ReportProblemCommand{
		parcelID:    parcelID,
		description: description,
		actorID:     actorID,
		actorRole:   actorRole,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportProblemCommand) Validate() error {
	return c.guard.Validate(ErrReportProblemCommandIsNotConstructed)
}

// ParcelID returns the parcel to flag.
func (c ReportProblemCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Description returns the problem text as the caller wrote it.
func (c ReportProblemCommand) Description() string {
	return c.description
}

// ActorID returns the user reporting the problem.
func (c ReportProblemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the reporting user's role.
func (c ReportProblemCommand) ActorRole() user.Role {
	return c.actorRole
}
