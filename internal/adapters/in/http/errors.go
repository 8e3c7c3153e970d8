package http

import (
	"errors"
	"net/http"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeNotFound                = "NOT_FOUND"
	CodePackageAlreadyDelivered = "PACKAGE_ALREADY_DELIVERED"
	CodeInvalidState            = "INVALID_STATE"
	CodeInvalidPickupCode       = "INVALID_PICKUP_CODE"
	CodeConflict                = "CONFLICT"
	CodeInvalidOperation        = "INVALID_OPERATION"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeForbidden               = "FORBIDDEN"
	CodeTooManyRequests         = "TOO_MANY_REQUESTS"
	CodeInternal                = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is an error that already knows its HTTP representation.
type apiError struct {
	status int
	body   ErrorResponse
}

func (e *apiError) Error() string {
	return e.body.Message
}

func newAPIError(status int, code, message string) *apiError {
	return &apiError{status: status, body: ErrorResponse{Code: code, Message: message}}
}

// classify maps an application error to its HTTP status and code.
func classify(err error) *apiError {
	var api *apiError
	if errors.As(err, &api) {
		return api
	}

	var invalidState *errs.InvalidStateError
	switch {
	case errors.As(err, &invalidState):
		if invalidState.State == "DELIVERED" {
			return newAPIError(http.StatusConflict, CodePackageAlreadyDelivered, err.Error())
		}
		return newAPIError(http.StatusConflict, CodeInvalidState, err.Error())
	case errors.Is(err, errs.ErrInvalidCode):
		return newAPIError(http.StatusUnprocessableEntity, CodeInvalidPickupCode, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return newAPIError(http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return newAPIError(http.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidOperation):
		return newAPIError(http.StatusUnprocessableEntity, CodeInvalidOperation, err.Error())
	case errors.Is(err, errs.ErrAccessDenied):
		return newAPIError(http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return newAPIError(http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, queries.ErrInvalidCredentials):
		return newAPIError(http.StatusUnauthorized, CodeInvalidCredentials, err.Error())
	case errors.Is(err, queries.ErrTooManyLoginAttempts):
		return newAPIError(http.StatusTooManyRequests, CodeTooManyRequests, err.Error())
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return newAPIError(httpErr.Code, codeForStatus(httpErr.Code), http.StatusText(httpErr.Code))
	}

	return newAPIError(http.StatusInternalServerError, CodeInternal, "internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return CodeNotFound
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	default:
		return CodeInternal
	}
}

// errorHandler replaces echo's default so every failure has the same body.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	api := classify(err)
	if api.status >= http.StatusInternalServerError {
		s.log.Error(c.Request().Context(), "request failed", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(api.status)
	} else {
		err = c.JSON(api.status, api.body)
	}
	if err != nil {
		s.log.Error(c.Request().Context(), "write error response", err)
	}
}
