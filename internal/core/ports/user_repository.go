package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
)

// UserRepository persists users.
type UserRepository interface {
	// Add stores a user. A taken email yields an errs.ConflictError.
	Add(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id kernel.UUID) error

	// Get loads a user or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks a user up by normalized email or returns errs.ObjectNotFoundError.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// Exists reports whether a user with id is stored.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)

	// List returns all users ordered by full name.
	List(ctx context.Context) ([]*user.User, error)

	// CountByRole counts users holding role.
	CountByRole(ctx context.Context, role user.Role) (int64, error)
}
