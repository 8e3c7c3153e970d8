package pickuppointrepo

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/pickuppoint"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "pickupPoint"

// GormPickupPointRepository implements ports.PickupPointRepository using GORM.
type GormPickupPointRepository struct {
	db *gorm.DB
}

// NewGormPickupPointRepository creates a repository bound to db. Pass a
// transaction handle to make its writes part of a unit of work.
func NewGormPickupPointRepository(db *gorm.DB) *GormPickupPointRepository {
	return &GormPickupPointRepository{db: db}
}

// Add inserts the point. A duplicate id is a ConflictError.
func (r *GormPickupPointRepository) Add(ctx context.Context, point *pickuppoint.PickupPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := fromDomain(point)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(entityName, point.ID().String(), err)
		}
		return err
	}
	return nil
}

// Update overwrites the stored attributes of point.
func (r *GormPickupPointRepository) Update(ctx context.Context, point *pickuppoint.PickupPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := fromDomain(point)
	result := r.db.WithContext(ctx).
		Model(&PickupPointDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                     dto.Name,
			"latitude":                 dto.Latitude,
			"longitude":                dto.Longitude,
			"acceptance_radius_meters": dto.AcceptanceRadiusMeters,
			"updated_at":               dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entityName, point.ID().String())
	}
	return nil
}

// Delete removes the point or returns NotFound.
func (r *GormPickupPointRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&PickupPointDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entityName, id.String())
	}
	return nil
}

// Get loads a point or returns errs.ObjectNotFoundError.
func (r *GormPickupPointRepository) Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the row with SELECT ... FOR UPDATE until the surrounding
// transaction ends, so concurrent edits of one point apply one after another.
func (r *GormPickupPointRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormPickupPointRepository) get(db *gorm.DB, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickupPointDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// List returns points in insertion order; nearest-point search breaks ties by it.
func (r *GormPickupPointRepository) List(ctx context.Context) ([]*pickuppoint.PickupPoint, error) {
	var dtos []PickupPointDTO
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	points := make([]*pickuppoint.PickupPoint, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
