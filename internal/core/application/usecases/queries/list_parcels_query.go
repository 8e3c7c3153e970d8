package queries

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery lists parcels, newest first.
//
// Callers that may not see every parcel are always narrowed to their own
// parcels, whatever recipientID they asked for.
type ListParcelsQuery struct {
	viewer      Viewer
	recipientID *kernel.UUID
	search      string

	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a validated list query.
//
// Parameters:
//   - viewer: the authenticated caller
//   - recipientID: optional recipient filter; ignored for callers limited to their own parcels
//   - search: case-insensitive substring of sender or tracking number, trimmed; empty means no filter
//
// Returns:
//   - ListParcelsQuery: the query with the effective recipient filter applied
//   - error: ValueIsRequired when the viewer or the recipient id is the zero UUID
//
// Example:
//
//	q, err := queries.NewListParcelsQuery(viewer, nil, "zalando")
//	if err != nil {
//	    return err
//	}
//	parcels, err := handler.Handle(ctx, q)
func NewListParcelsQuery(viewer Viewer, recipientID *kernel.UUID, search string) (ListParcelsQuery, error) {
	if err := viewer.UserID.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}
	if recipientID != nil {
		if err := recipientID.Validate(); err != nil {
			return ListParcelsQuery{}, err
		}
	}

	if !services.CanPerform(viewer.Role, services.OpViewAnyParcel) {
		own := viewer.UserID
		recipientID = &own
	}

	return ListParcelsQuery{
		viewer:      viewer,
		recipientID: recipientID,
		search:      strings.TrimSpace(search),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// RecipientID is the effective recipient filter, nil for all recipients.
func (q ListParcelsQuery) RecipientID() *kernel.UUID {
	return q.recipientID
}

// Search is the trimmed search text.
func (q ListParcelsQuery) Search() string {
	return q.search
}

func (q ListParcelsQuery) Viewer() Viewer {
	return q.viewer
}
