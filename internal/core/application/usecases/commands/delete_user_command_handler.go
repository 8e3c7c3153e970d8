package commands

import (
	"context"
)

// DeleteUserCommandHandler removes an account. Parcels reference users by id
// only, so existing parcels keep the dangling id.
type DeleteUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewDeleteUserCommandHandler creates the handler.
func NewDeleteUserCommandHandler(uowFactory UserUoWFactory) DeleteUserCommandHandler {
	return DeleteUserCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the user inside a unit of work. A missing user is NotFound.
func (h DeleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTransaction(ctx, h.uowFactory.Create(), func(uow UserUoW) error {
		return uow.UserRepository().Delete(ctx, cmd.UserID())
	})
}
