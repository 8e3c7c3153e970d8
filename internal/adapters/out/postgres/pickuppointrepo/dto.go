// Package pickuppointrepo persists the pickup point directory with GORM.
package pickuppointrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"

	"github.com/google/uuid"
)

// PickupPointDTO is the row layout of the pickup_points table.
type PickupPointDTO struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                   string    `gorm:"size:255;not null"`
	Latitude               float64   `gorm:"not null"`
	Longitude              float64   `gorm:"not null"`
	AcceptanceRadiusMeters float64   `gorm:"not null"`
	CreatedAt              time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt              time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (PickupPointDTO) TableName() string {
	return "pickup_points"
}

func fromDomain(p *pickuppoint.PickupPoint) PickupPointDTO {
	return PickupPointDTO{
		ID:                     p.ID().Bytes(),
		Name:                   p.Name(),
		Latitude:               p.Location().Latitude(),
		Longitude:              p.Location().Longitude(),
		AcceptanceRadiusMeters: p.AcceptanceRadiusMeters(),
		CreatedAt:              p.CreatedAt().UTC(),
		UpdatedAt:              p.UpdatedAt().UTC(),
	}
}

func toDomain(dto PickupPointDTO) (*pickuppoint.PickupPoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return pickuppoint.RestorePickupPoint(id, dto.Name, location, dto.AcceptanceRadiusMeters, dto.CreatedAt, dto.UpdatedAt)
}
