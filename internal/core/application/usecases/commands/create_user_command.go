package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// MinPasswordLength is the shortest password accepted for a new account.
const MinPasswordLength = 6

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand creates an account. The plain password never leaves the
// handler; only its hash is stored.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	email    string
	fullName string
	password string
	role     user.Role

	guard guard.ConstructorGuard
}

// NewCreateUserCommand validates every field and reports all failures at once.
//
// Parameters:
//   - userID: id of the new account
//   - email: login name, trimmed and lower-cased
//   - fullName: display name, trimmed
//   - password: plain text, at least MinPasswordLength characters
//   - role: ADMIN, RECEPTIONIST or EMPLOYEE
//
// Returns:
//   - CreateUserCommand: ready for CreateUserCommandHandler.Handle
//   - error: the joined field errors, matchable with errors.Is
//
// Example:
//
//	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), "emma@office.test", "Emma", "secret1", user.RoleEmployee)
//	if err != nil {
//	    return err
//	}
func NewCreateUserCommand(
	userID kernel.UUID,
	email string,
	fullName string,
	password string,
	role user.Role,
) (CreateUserCommand, error) {
	cmd := CreateUserCommand{
		email:    user.NormalizeEmail(email),
		fullName: strings.TrimSpace(fullName),
		guard:    guard.NewConstructorGuard(),
	}

	var fieldErrs []error
	if err := userID.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if cmd.email == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("email"))
	}
	if cmd.fullName == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("fullName"))
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		fieldErrs = append(fieldErrs, errs.NewValueIsInvalidErrorWithCause(
			"password",
			fmt.Errorf("must be at least %d characters", MinPasswordLength),
		))
	}
	if err := role.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if err := errors.Join(fieldErrs...); err != nil {
		return CreateUserCommand{}, err
	}

	cmd.userID = userID
	cmd.password = password
	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

// UserID returns the id of the new account.
func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Email returns the normalized login name.
func (c CreateUserCommand) Email() string {
	return c.email
}

// FullName returns the trimmed display name.
func (c CreateUserCommand) FullName() string {
	return c.fullName
}

// Password returns the plain text password. It is hashed before storage.
func (c CreateUserCommand) Password() string {
	return c.password
}

// Role returns the role of the new account.
func (c CreateUserCommand) Role() user.Role {
	return c.role
}
