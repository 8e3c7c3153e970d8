// Package commands contains the operations that change state: registering,
// editing, delivering and deleting parcels, reporting problems, and managing
// pickup points and users. Every handler follows the same shape: validate the
// command, open a unit of work, load aggregates, apply domain logic, persist,
// commit.
package commands

import (
	"context"

	"parcels/internal/core/ports"
)

// Unit of Work interfaces scoped to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides the parcel repository bound to the transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// UserRepoFactory provides the user repository bound to the transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// PickupPointRepoFactory provides the pickup point repository bound to the transaction.
	PickupPointRepoFactory interface {
		PickupPointRepository() ports.PickupPointRepository
	}

	// ParcelUoW is used by parcel commands. Users are read to check that a
	// recipient exists.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		UserRepoFactory
	}

	// ParcelUoWFactory creates parcel units of work.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// PickupPointUoW is used by pickup point directory commands.
	PickupPointUoW interface {
		TxManager
		PickupPointRepoFactory
	}

	// PickupPointUoWFactory creates pickup point units of work.
	PickupPointUoWFactory interface {
		Create() PickupPointUoW
	}

	// UserUoW is used by user management commands.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates user units of work.
	UserUoWFactory interface {
		Create() UserUoW
	}
)

// inTransaction runs fn inside a unit of work. The deferred Rollback is a no-op
// after a successful Commit.
func inTransaction[U TxManager](ctx context.Context, uow U, fn func(U) error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
