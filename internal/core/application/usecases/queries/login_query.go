package queries

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/user"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrLoginQueryIsNotConstructed = errors.New(
	"LoginQuery must be created via NewLoginQuery constructor",
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTooManyLoginAttempts is returned when the attempt limiter refuses a login.
var ErrTooManyLoginAttempts = errors.New("too many login attempts")

// LoginQuery exchanges credentials for an access token.
type LoginQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewLoginQuery normalizes the email to lower case.
//
// Parameters:
//   - email: login name, surrounding whitespace is dropped
//   - password: plain text password, checked later against the stored hash
//
// Returns:
//   - LoginQuery: the query
//   - error: ValueIsRequired for an empty email or password
func NewLoginQuery(email, password string) (LoginQuery, error) {
	email = user.NormalizeEmail(email)

	var fieldErrs []error
	if email == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("email"))
	}
	if strings.TrimSpace(password) == "" {
		fieldErrs = append(fieldErrs, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(fieldErrs...); err != nil {
		return LoginQuery{}, err
	}

	return LoginQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q LoginQuery) Validate() error {
	return q.guard.Validate(ErrLoginQueryIsNotConstructed)
}

func (q LoginQuery) Email() string {
	return q.email
}

// LoginResponse is the issued token and the authenticated user.
type LoginResponse struct {
	AccessToken string
	ExpiresAt   string
	User        UserView
}
