package commands_test

import (
	"errors"
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRegisterCommand(t *testing.T, recipient kernel.UUID) commands.RegisterParcelCommand {
	t.Helper()
	cmd, err := commands.NewRegisterParcelCommand(kernel.NewUUID(), "DHL-1", "Zalando", "Reception", recipient, "")
	require.NoError(t, err)
	return cmd
}

func TestRegisterParcelCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	recipient := kernel.NewUUID()
	cmd := newRegisterCommand(t, recipient)

	users := new(MockUserRepository)
	parcels := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Exists", ctx, recipient).Return(true, nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	h := commands.NewRegisterParcelCommandHandler(factory, codeGenerator(7), fixedClock{t: now})
	registered, err := h.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)

	assert.True(t, registered.ID().IsEqual(cmd.ParcelID()))
	assert.Equal(t, parcel.Registered, registered.Status())
	assert.Equal(t, "000007", registered.PickupCode().String())
	assert.Equal(t, now, registered.CreatedAt())
	assert.Len(t, registered.DomainEvents(), 1)

	users.AssertExpectations(t)
	parcels.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterParcelCommandHandler_Handle_UnknownRecipient(t *testing.T) {
	// Given a recipient that is not in the user directory
	ctx := t.Context()
	recipient := kernel.NewUUID()
	cmd := newRegisterCommand(t, recipient)

	users := new(MockUserRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Exists", ctx, recipient).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When the parcel is registered
	h := commands.NewRegisterParcelCommandHandler(factory, codeGenerator(7), fixedClock{t: now})
	registered, err := h.Handle(ctx, cmd)

	// Then nothing is stored
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, registered)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestRegisterParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	// Arrange
	factory := new(MockParcelUoWFactory)
	h := commands.NewRegisterParcelCommandHandler(factory, codeGenerator(7), fixedClock{t: now})

	// Act
	_, err := h.Handle(t.Context(), commands.RegisterParcelCommand{})

	// Assert
	require.ErrorIs(t, err, commands.ErrRegisterParcelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterParcelCommandHandler_Handle_BeginError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := newRegisterCommand(t, kernel.NewUUID())

	uow := new(MockParcelUoW)
	factory := new(MockParcelUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	// Act
	h := commands.NewRegisterParcelCommandHandler(factory, codeGenerator(7), fixedClock{t: now})
	_, err := h.Handle(ctx, cmd)

	// Assert
	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestRegisterParcelCommandHandler_Handle_CommitError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	recipient := kernel.NewUUID()
	cmd := newRegisterCommand(t, recipient)

	users := new(MockUserRepository)
	parcels := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Exists", ctx, recipient).Return(true, nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	h := commands.NewRegisterParcelCommandHandler(factory, codeGenerator(7), fixedClock{t: now})
	registered, err := h.Handle(ctx, cmd)

	// Assert
	require.EqualError(t, err, "commit error")
	assert.Nil(t, registered)
	uow.AssertExpectations(t)
}
