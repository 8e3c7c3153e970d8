package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrListProblemsQueryIsNotConstructed = errors.New(
	"ListProblemsQuery must be created via NewListProblemsQuery constructor",
)

// ListProblemsQuery lists PROBLEM parcels, most recently updated first,
// optionally only those issued by one receptionist.
type ListProblemsQuery struct {
	viewer     Viewer
	issuedByID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListProblemsQuery creates a validated query. A nil issuedByID lists problems
// regardless of who handed the parcel out.
//
// Returns:
//   - ListProblemsQuery: the query
//   - error: ValueIsRequired when the viewer or issuedByID is the zero UUID
func NewListProblemsQuery(viewer Viewer, issuedByID *kernel.UUID) (ListProblemsQuery, error) {
	if err := viewer.UserID.Validate(); err != nil {
		return ListProblemsQuery{}, err
	}
	if issuedByID != nil {
		if err := issuedByID.Validate(); err != nil {
			return ListProblemsQuery{}, err
		}
	}

	return ListProblemsQuery{
		viewer:     viewer,
		issuedByID: issuedByID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListProblemsQuery) Validate() error {
	return q.guard.Validate(ErrListProblemsQueryIsNotConstructed)
}

func (q ListProblemsQuery) Viewer() Viewer {
	return q.viewer
}

// IssuedByID is the receptionist filter, nil for all.
func (q ListProblemsQuery) IssuedByID() *kernel.UUID {
	return q.issuedByID
}
