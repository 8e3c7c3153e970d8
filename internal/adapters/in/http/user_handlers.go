package http

import (
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateUserCommand(kernel.NewUUID(), req.Email, req.FullName, req.Password, role)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(queries.NewUserView(created)))
}

// ListUsers handles GET /api/v1/users.
func (s *Server) ListUsers(c echo.Context) error {
	views, err := s.handlers.Users.List(c.Request().Context(), queries.NewListUsersQuery())
	if err != nil {
		return err
	}

	response := make([]UserResponse, len(views))
	for i, view := range views {
		response[i] = toUserResponse(view)
	}
	return c.JSON(http.StatusOK, response)
}

// GetUser handles GET /api/v1/users/{id}. Non-admins may only read themselves.
func (s *Server) GetUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserQuery(viewerFrom(c), id)
	if err != nil {
		return err
	}

	view, err := s.handlers.Users.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(view))
}

// CountUsers handles GET /api/v1/users/stats/count. The role defaults to EMPLOYEE.
func (s *Server) CountUsers(c echo.Context) error {
	raw, err := queryString(c, "role")
	if err != nil {
		return err
	}

	role := user.RoleEmployee
	if raw != "" {
		if role, err = user.ParseRole(raw); err != nil {
			return err
		}
	}

	query, err := queries.NewCountUsersQuery(role)
	if err != nil {
		return err
	}

	count, err := s.handlers.Users.Count(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (s *Server) DeleteUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteUserCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
