package commands

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// ReportProblemCommandHandler moves parcels to PROBLEM. The policy decides
// whether already delivered parcels may be flagged.
type ReportProblemCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     parcel.ProblemReportPolicy
	clock      ports.Clock
}

// NewReportProblemCommandHandler creates the handler. The policy decides whether
// delivered parcels may still be flagged.
func NewReportProblemCommandHandler(
	uowFactory ParcelUoWFactory,
	policy parcel.ProblemReportPolicy,
	clock ports.Clock,
) ReportProblemCommandHandler {
	return ReportProblemCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle records the problem and returns the updated parcel.
//
// The caller must be allowed to see the parcel: employees may only flag parcels
// addressed to them. Otherwise Handle returns errs.AccessDeniedError and nothing
// changes.
func (h ReportProblemCommandHandler) Handle(ctx context.Context, cmd ReportProblemCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var reported *parcel.Parcel
	err := inTransaction(ctx, h.uowFactory.Create(), func(uow ParcelUoW) error {
		repo := uow.ParcelRepository()
		p, err := repo.GetForUpdate(ctx, cmd.ParcelID())
		if err != nil {
			return err
		}

		if !services.CanViewParcel(cmd.ActorRole(), p.IsRecipient(cmd.ActorID())) {
			return errs.NewAccessDeniedError("parcel", p.ID().String())
		}

		if err = p.ReportProblem(cmd.Description(), h.policy, h.clock.Now().UTC()); err != nil {
			return err
		}

		if err = repo.Update(ctx, p); err != nil {
			return err
		}

		reported = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reported, nil
}
