package user

import (
	"fmt"
	"strings"

	"parcels/internal/pkg/errs"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleEmployee     Role = "EMPLOYEE"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleReceptionist, RoleEmployee}
}

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := candidate.Validate(); err != nil {
		return "", err
	}
	return candidate, nil
}

// Validate rejects names outside Roles().
func (r Role) Validate() error {
	for _, known := range Roles() {
		if r == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", string(r)))
}

// String returns the wire name of the role.
func (r Role) String() string {
	return string(r)
}
