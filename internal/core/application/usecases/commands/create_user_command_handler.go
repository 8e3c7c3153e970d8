package commands

import (
	"context"

	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/ports"
)

// CreateUserCommandHandler registers new accounts.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
}

// NewCreateUserCommandHandler creates the handler.
//
// Parameters:
//   - uowFactory: opens a unit of work per call
//   - hasher: turns the plain password into the stored hash
//   - clock: stamps the creation time
func NewCreateUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
	}
}

// Handle hashes the password and stores the user. A taken email surfaces as
// errs.ConflictError from the repository.
func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Email(), cmd.FullName(), hash, cmd.Role(), h.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = inTransaction(ctx, h.uowFactory.Create(), func(uow UserUoW) error {
		return uow.UserRepository().Add(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}
