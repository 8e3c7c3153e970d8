package queries

import (
	"context"

	"parcels/internal/core/ports"
)

// ListParcelsQueryHandler serves parcel lists. Pickup codes are hidden per parcel
// the same way GetParcelQueryHandler does it.
type ListParcelsQueryHandler struct {
	parcels ports.ParcelRepository
}

// NewListParcelsQueryHandler creates the handler over the parcel store.
func NewListParcelsQueryHandler(parcels ports.ParcelRepository) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{parcels: parcels}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.parcels.List(ctx, ports.ParcelListFilter{
		RecipientID: query.RecipientID(),
		Search:      query.Search(),
	})
	if err != nil {
		return nil, err
	}

	return newParcelViews(found, query.Viewer()), nil
}
