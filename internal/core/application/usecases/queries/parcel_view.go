package queries

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
)

// ParcelView is the parcel read model. PickupCode is empty unless the viewer
// may see it.
type ParcelView struct {
	ID                 kernel.UUID
	TrackingNumber     string
	Sender             string
	PickupPoint        string
	PhotoReference     string
	PickupCode         string
	Status             string
	RecipientID        kernel.UUID
	IssuedByID         *kernel.UUID
	ProblemDescription string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewParcelView maps a parcel for viewer. revealCode forces the pickup code into
// the view; registration responses use it.
func NewParcelView(p *parcel.Parcel, viewer Viewer, revealCode bool) ParcelView {
	view := ParcelView{
		ID:                 p.ID(),
		TrackingNumber:     p.TrackingNumber(),
		Sender:             p.Sender(),
		PickupPoint:        p.PickupPoint(),
		PhotoReference:     p.PhotoReference(),
		Status:             p.Status().String(),
		RecipientID:        p.RecipientID(),
		IssuedByID:         p.IssuedByID(),
		ProblemDescription: p.ProblemDescription(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
	if revealCode || services.CanViewPickupCode(viewer.Role, p.IsRecipient(viewer.UserID)) {
		view.PickupCode = p.PickupCode().String()
	}
	return view
}

func newParcelViews(parcels []*parcel.Parcel, viewer Viewer) []ParcelView {
	views := make([]ParcelView, 0, len(parcels))
	for _, p := range parcels {
		views = append(views, NewParcelView(p, viewer, false))
	}
	return views
}
