package queries

import (
	"context"

	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

type GetParcelQueryHandler struct {
	parcels ports.ParcelRepository
}

func NewGetParcelQueryHandler(parcels ports.ParcelRepository) GetParcelQueryHandler {
	return GetParcelQueryHandler{parcels: parcels}
}

// Handle returns errs.AccessDeniedError when the viewer is neither staff nor
// the recipient.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	p, err := h.parcels.Get(ctx, query.ParcelID())
	if err != nil {
		return ParcelView{}, err
	}

	viewer := query.Viewer()
	if !services.CanViewParcel(viewer.Role, p.IsRecipient(viewer.UserID)) {
		return ParcelView{}, errs.NewAccessDeniedError("parcel", p.ID().String())
	}

	return NewParcelView(p, viewer, false), nil
}
