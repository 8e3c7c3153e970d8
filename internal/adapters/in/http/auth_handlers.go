package http

import (
	"net/http"

	"parcels/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	query, err := queries.NewLoginQuery(req.Email, req.Password)
	if err != nil {
		return err
	}

	result, err := s.handlers.Login.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
		User:        toUserResponse(result.User),
	})
}
