package queries

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrListUsersQueryIsNotConstructed = errors.New(
		"ListUsersQuery must be created via NewListUsersQuery constructor",
	)
	ErrGetUserQueryIsNotConstructed = errors.New(
		"GetUserQuery must be created via NewGetUserQuery constructor",
	)
	ErrCountUsersQueryIsNotConstructed = errors.New(
		"CountUsersQuery must be created via NewCountUsersQuery constructor",
	)
)

// UserView never carries the password hash.
type UserView struct {
	ID        kernel.UUID
	Email     string
	FullName  string
	Role      user.Role
	CreatedAt time.Time
}

// NewUserView copies the public fields of u.
func NewUserView(u *user.User) UserView {
	return UserView{
		ID:        u.ID(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
	}
}

// ListUsersQuery asks for the whole user directory.
type ListUsersQuery struct {
	guard guard.ConstructorGuard
}

// NewListUsersQuery creates a parameterless query.
func NewListUsersQuery() ListUsersQuery {
	return ListUsersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

// GetUserQuery reads one profile on behalf of a viewer.
type GetUserQuery struct {
	viewer Viewer
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserQuery creates a validated query.
//
// Returns:
//   - GetUserQuery: the query
//   - error: ValueIsRequired when the viewer or the user id is the zero UUID
func NewGetUserQuery(viewer Viewer, userID kernel.UUID) (GetUserQuery, error) {
	if err := errors.Join(viewer.UserID.Validate(), userID.Validate()); err != nil {
		return GetUserQuery{}, err
	}
	return GetUserQuery{viewer: viewer, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

// CountUsersQuery counts accounts holding one role.
type CountUsersQuery struct {
	role user.Role

	guard guard.ConstructorGuard
}

// NewCountUsersQuery rejects roles outside ADMIN, RECEPTIONIST and EMPLOYEE.
func NewCountUsersQuery(role user.Role) (CountUsersQuery, error) {
	if err := role.Validate(); err != nil {
		return CountUsersQuery{}, err
	}
	return CountUsersQuery{role: role, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q CountUsersQuery) Validate() error {
	return q.guard.Validate(ErrCountUsersQueryIsNotConstructed)
}

// UserQueryHandler serves the user directory reads.
type UserQueryHandler struct {
	users ports.UserRepository
}

// NewUserQueryHandler creates the handler over the user store.
func NewUserQueryHandler(users ports.UserRepository) UserQueryHandler {
	return UserQueryHandler{users: users}
}

// List returns every user ordered by full name.
func (h UserQueryHandler) List(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(all))
	for _, u := range all {
		views = append(views, NewUserView(u))
	}
	return views, nil
}

// Get lets administrators read any profile and everyone else only their own.
func (h UserQueryHandler) Get(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	isSelf := query.viewer.UserID.IsEqual(query.userID)
	if !services.CanViewUser(query.viewer.Role, isSelf) {
		return UserView{}, errs.NewAccessDeniedError("user", query.userID.String())
	}

	u, err := h.users.Get(ctx, query.userID)
	if err != nil {
		return UserView{}, err
	}
	return NewUserView(u), nil
}

// Count returns how many accounts hold the query's role.
func (h UserQueryHandler) Count(ctx context.Context, query CountUsersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	return h.users.CountByRole(ctx, query.role)
}
