package commands

import (
	"context"
)

// DeleteParcelCommandHandler removes a parcel regardless of its status.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewDeleteParcelCommandHandler creates the handler.
func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the parcel. A missing parcel yields errs.ObjectNotFoundError.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTransaction(ctx, h.uowFactory.Create(), func(uow ParcelUoW) error {
		return uow.ParcelRepository().Delete(ctx, cmd.ParcelID())
	})
}
