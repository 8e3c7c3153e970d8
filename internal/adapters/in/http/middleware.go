package http

import (
	"net/http"
	"strings"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const (
	principalKey = "principal"
	loginPath    = "/api/v1/auth/login"
)

func (s *Server) requestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(s.log.WithRequestID(req.Context(), id)))
		},
	})
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zerolog.InfoLevel
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = zerolog.ErrorLevel
			case v.Status >= http.StatusBadRequest:
				level = zerolog.WarnLevel
			}

			event := s.log.Event(c.Request().Context(), level).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency)
			if v.Error != nil {
				event = event.Err(v.Error)
			}
			event.Msg("request")
			return nil
		},
	})
}

// authenticate resolves the bearer token into a principal. Login is public.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() == loginPath {
			return next(c)
		}

		scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return newAPIError(http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		}

		principal, err := s.tokens.Verify(token)
		if err != nil {
			return newAPIError(http.StatusUnauthorized, CodeUnauthorized, "invalid or expired token")
		}

		c.Set(principalKey, principal)
		req := c.Request()
		ctx := s.log.WithUserID(req.Context(), principal.UserID.String())
		ctx = s.log.WithActorRole(ctx, principal.Role.String())
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

// authorize rejects callers whose role may not perform op.
func (s *Server) authorize(op services.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := principalFrom(c)
			if !ok {
				return newAPIError(http.StatusUnauthorized, CodeUnauthorized, "authentication required")
			}
			if !services.CanPerform(principal.Role, op) {
				return newAPIError(http.StatusForbidden, CodeForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (ports.Principal, bool) {
	principal, ok := c.Get(principalKey).(ports.Principal)
	return principal, ok
}

func viewerFrom(c echo.Context) queries.Viewer {
	principal, _ := principalFrom(c)
	return queries.NewViewer(principal.UserID, principal.Role)
}
