// Package parcelrepo persists parcel aggregates with GORM. Status is stored by
// name and every row carries a version used for optimistic concurrency.
package parcelrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row layout of the parcels table.
type ParcelDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber     string     `gorm:"size:128;not null"`
	Sender             string     `gorm:"size:255;not null"`
	PickupPoint        string     `gorm:"size:255;not null"`
	PhotoReference     string     `gorm:"size:512;not null;default:''"`
	PickupCode         string     `gorm:"size:6;not null"`
	Status             string     `gorm:"size:16;not null;index"`
	RecipientID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	IssuedByID         *uuid.UUID `gorm:"type:uuid;index"`
	ProblemDescription string     `gorm:"type:text;not null;default:''"`
	CreatedAt          time.Time  `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt          time.Time  `gorm:"not null;autoUpdateTime:false"`
	Version            int        `gorm:"not null;default:0"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	var issuedBy *uuid.UUID
	if id := p.IssuedByID(); id != nil {
		raw := id.Bytes()
		issuedBy = &raw
	}

	return ParcelDTO{
		ID:                 p.ID().Bytes(),
		TrackingNumber:     p.TrackingNumber(),
		Sender:             p.Sender(),
		PickupPoint:        p.PickupPoint(),
		PhotoReference:     p.PhotoReference(),
		PickupCode:         p.PickupCode().String(),
		Status:             p.Status().String(),
		RecipientID:        p.RecipientID().Bytes(),
		IssuedByID:         issuedBy,
		ProblemDescription: p.ProblemDescription(),
		CreatedAt:          p.CreatedAt().UTC(),
		UpdatedAt:          p.UpdatedAt().UTC(),
		Version:            p.Version(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var issuedBy *kernel.UUID
	if dto.IssuedByID != nil {
		issuer, issuerErr := kernel.UUIDFromBytes((*dto.IssuedByID)[:])
		if issuerErr != nil {
			return nil, issuerErr
		}
		issuedBy = &issuer
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.RestoreParams{
		ID:                 id,
		TrackingNumber:     dto.TrackingNumber,
		Sender:             dto.Sender,
		PickupPoint:        dto.PickupPoint,
		PhotoReference:     dto.PhotoReference,
		PickupCode:         dto.PickupCode,
		Status:             status,
		RecipientID:        recipientID,
		IssuedByID:         issuedBy,
		ProblemDescription: dto.ProblemDescription,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		Version:            dto.Version,
	})
}

func toDomainList(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}
