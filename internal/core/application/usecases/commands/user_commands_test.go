package commands_test

import (
	"errors"
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateUserCommand(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "  Jan.Kowalski@Firma.PL ", "Jan Kowalski", "secret1", user.RoleEmployee)
		require.NoError(t, err)
		assert.Equal(t, "jan.kowalski@firma.pl", cmd.Email())
	})

	t.Run("short password", func(t *testing.T) {
		_, err := commands.NewCreateUserCommand(kernel.NewUUID(), "jan@firma.pl", "Jan", "12345", user.RoleEmployee)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := commands.NewCreateUserCommand(kernel.NewUUID(), "jan@firma.pl", "Jan", "secret1", user.Role("JANITOR"))
		require.Error(t, err)
	})
}

func TestCreateUserCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "jan@firma.pl", "Jan Kowalski", "secret1", user.RoleReceptionist)
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "secret1").Return("$2a$hash", nil).Once()

	users := new(MockUserRepository)
	uow := new(MockUserUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Add", ctx, mock.AnythingOfType("*user.User")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	created, err := commands.NewCreateUserCommandHandler(factory, hasher, fixedClock{t: now}).Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "$2a$hash", created.PasswordHash())
	assert.Equal(t, user.RoleReceptionist, created.Role())
	hasher.AssertExpectations(t)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateUserCommandHandler_Handle_DuplicateEmail(t *testing.T) {
	// Given an email that is already taken
	ctx := t.Context()
	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "jan@firma.pl", "Jan Kowalski", "secret1", user.RoleEmployee)
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "secret1").Return("$2a$hash", nil).Once()

	users := new(MockUserRepository)
	uow := new(MockUserUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	users.On("Add", ctx, mock.AnythingOfType("*user.User")).
		Return(errs.NewConflictError("user", "jan@firma.pl")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When a second account is created with it
	_, err = commands.NewCreateUserCommandHandler(factory, hasher, fixedClock{t: now}).Handle(ctx, cmd)

	// Then the conflict surfaces and nothing commits
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateUserCommandHandler_Handle_HashError(t *testing.T) {
	// Arrange
	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "jan@firma.pl", "Jan Kowalski", "secret1", user.RoleEmployee)
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "secret1").Return("", errors.New("cost too high")).Once()
	factory := new(MockUserUoWFactory)

	// Act
	_, err = commands.NewCreateUserCommandHandler(factory, hasher, fixedClock{t: now}).Handle(t.Context(), cmd)

	// Assert
	require.EqualError(t, err, "cost too high")
	factory.AssertNotCalled(t, "Create")
}

func TestDeleteUserCommandHandler_Handle(t *testing.T) {
	// Arrange
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteUserCommand(id)
	require.NoError(t, err)

	users := new(MockUserRepository)
	uow := new(MockUserUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Delete", ctx, id).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	err = commands.NewDeleteUserCommandHandler(factory).Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}
