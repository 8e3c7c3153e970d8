package parcelrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "parcel"

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose domain events are published after commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a parcel repository. tracker may be nil for
// read-only use.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a freshly registered parcel.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(entityName, aggregate.ID().String(), err)
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Update writes every mutable column and bumps the version, but only while the
// stored version still equals the one the aggregate was loaded with.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"tracking_number":     dto.TrackingNumber,
			"sender":              dto.Sender,
			"pickup_point":        dto.PickupPoint,
			"photo_reference":     dto.PhotoReference,
			"status":              dto.Status,
			"recipient_id":        dto.RecipientID,
			"issued_by_id":        dto.IssuedByID,
			"problem_description": dto.ProblemDescription,
			"updated_at":          dto.UpdatedAt,
			"version":             gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError(entityName, aggregate.ID().String())
		}
		return errs.NewConflictError(entityName, aggregate.ID().String())
	}

	r.track(aggregate)
	return nil
}

// Delete removes the parcel or returns NotFound.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entityName, id.String())
	}
	return nil
}

// Get loads a parcel by id without locking it.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the row with SELECT ... FOR UPDATE. The lock lives until
// the surrounding transaction ends; outside a transaction it is released at once.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormParcelRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List filters by recipient and by a case-insensitive substring of sender or
// tracking number. Newest first.
func (r *GormParcelRepository) List(ctx context.Context, filter ports.ParcelListFilter) ([]*parcel.Parcel, error) {
	query := r.db.WithContext(ctx).Model(&ParcelDTO{})

	if filter.RecipientID != nil {
		query = query.Where("recipient_id = ?", filter.RecipientID.Bytes())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(sender) LIKE ? ESCAPE '\' OR LOWER(tracking_number) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}

	var dtos []ParcelDTO
	if err := query.Order("created_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListProblems returns PROBLEM parcels, most recently updated first, optionally
// only those issued by issuedByID.
func (r *GormParcelRepository) ListProblems(ctx context.Context, issuedByID *kernel.UUID) ([]*parcel.Parcel, error) {
	query := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("status = ?", parcel.Problem.String())
	if issuedByID != nil {
		query = query.Where("issued_by_id = ?", issuedByID.Bytes())
	}

	var dtos []ParcelDTO
	if err := query.Order("updated_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// CountByStatus counts parcels in status.
func (r *GormParcelRepository) CountByStatus(ctx context.Context, status parcel.Status) (int64, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("status = ?", status.String()).Count(&count).Error
	return count, err
}

// CountCreatedBetween counts rows with start <= created_at <= end.
func (r *GormParcelRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("created_at >= ? AND created_at <= ?", start.UTC(), end.UTC()).
		Count(&count).Error
	return count, err
}

func (r *GormParcelRepository) exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error
	return count > 0, err
}

func (r *GormParcelRepository) track(aggregate *parcel.Parcel) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
