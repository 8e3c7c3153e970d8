package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned when a User was not built by NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is an office member who receives, hands out or administers parcels.
// Users never own parcels; parcels reference them by ID.
type User struct {
	id           kernel.UUID
	email        string
	fullName     string
	passwordHash string
	role         Role
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewUser creates a user. The email is stored trimmed and lower-cased; the password
// must already be hashed.
func NewUser(id kernel.UUID, email, fullName, passwordHash string, role Role, now time.Time) (*User, error) {
	u := &User{
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setFullName(fullName),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user from storage.
func RestoreUser(id kernel.UUID, email, fullName, passwordHash string, role Role, createdAt time.Time) (*User, error) {
	return NewUser(id, email, fullName, passwordHash, role, createdAt)
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate reports whether the user was properly constructed.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the user identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Email returns the normalized login name.
func (u *User) Email() string {
	return u.email
}

// FullName returns the display name.
func (u *User) FullName() string {
	return u.fullName
}

// PasswordHash is only read by the credential check; it is never serialized.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the access role.
func (u *User) Role() Role {
	return u.role
}

// CreatedAt returns when the account was created.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", errors.New("not a plain e-mail address"))
	}
	u.email = email
	return nil
}

func (u *User) setFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("fullName")
	}
	u.fullName = name
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
