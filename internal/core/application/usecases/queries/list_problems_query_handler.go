package queries

import (
	"context"

	"parcels/internal/core/ports"
)

// ListProblemsQueryHandler serves the problem list for staff.
type ListProblemsQueryHandler struct {
	parcels ports.ParcelRepository
}

// NewListProblemsQueryHandler creates the handler over the parcel store.
func NewListProblemsQueryHandler(parcels ports.ParcelRepository) ListProblemsQueryHandler {
	return ListProblemsQueryHandler{parcels: parcels}
}

// Handle returns PROBLEM parcels, most recently updated first.
func (h ListProblemsQueryHandler) Handle(ctx context.Context, query ListProblemsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.parcels.ListProblems(ctx, query.IssuedByID())
	if err != nil {
		return nil, err
	}

	return newParcelViews(found, query.Viewer()), nil
}
