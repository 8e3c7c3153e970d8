// Package ports defines the contracts between the application core and the
// adapters: repositories, the unit of work, and outbound services such as
// password hashing, token issuing, photo storage and event publishing.
package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelListFilter narrows List. Both constraints apply when set.
type ParcelListFilter struct {
	// RecipientID keeps only parcels addressed to this user.
	RecipientID *kernel.UUID
	// Search is a case-insensitive substring matched against sender OR tracking number.
	Search string
}

// ParcelRepository persists parcel aggregates.
type ParcelRepository interface {
	// Add stores a newly registered parcel.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update writes the aggregate if its stored version still equals aggregate.Version().
	// Returns an errs.ConflictError when another writer got there first.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Delete removes a parcel. Returns errs.ObjectNotFoundError if it does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get loads a parcel or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate is Get plus a row lock held until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// List returns matching parcels, newest created first. No pagination.
	List(ctx context.Context, filter ParcelListFilter) ([]*parcel.Parcel, error)

	// ListProblems returns PROBLEM parcels, most recently updated first, optionally
	// only those last handled by issuedByID.
	ListProblems(ctx context.Context, issuedByID *kernel.UUID) ([]*parcel.Parcel, error)

	// CountByStatus counts parcels currently in status.
	CountByStatus(ctx context.Context, status parcel.Status) (int64, error)

	// CountCreatedBetween counts parcels with start <= created_at <= end.
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}
