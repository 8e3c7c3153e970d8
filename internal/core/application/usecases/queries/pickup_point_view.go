package queries

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"
)

type PickupPointView struct {
	ID                     kernel.UUID
	Name                   string
	Latitude               float64
	Longitude              float64
	AcceptanceRadiusMeters float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func NewPickupPointView(p *pickuppoint.PickupPoint) PickupPointView {
	return PickupPointView{
		ID:                     p.ID(),
		Name:                   p.Name(),
		Latitude:               p.Location().Latitude(),
		Longitude:              p.Location().Longitude(),
		AcceptanceRadiusMeters: p.AcceptanceRadiusMeters(),
		CreatedAt:              p.CreatedAt(),
		UpdatedAt:              p.UpdatedAt(),
	}
}
