package http

import (
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// FindNearestPickupPoint handles GET /api/v1/pickup-points/nearest?lat=&lon=.
func (s *Server) FindNearestPickupPoint(c echo.Context) error {
	lat, err := requiredQueryFloat(c, "lat")
	if err != nil {
		return err
	}
	lon, err := requiredQueryFloat(c, "lon")
	if err != nil {
		return err
	}

	query, err := queries.NewFindNearestPickupPointQuery(lat, lon)
	if err != nil {
		return err
	}

	result, err := s.handlers.FindNearestPoint.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := NearestPickupPointResponse{Found: result.Found}
	if result.Found && result.Point != nil {
		point := toPickupPointResponse(*result.Point)
		distance := result.DistanceMeters
		response.Point = &point
		response.DistanceMeters = &distance
	}
	return c.JSON(http.StatusOK, response)
}

// ListPickupPoints handles GET /api/v1/pickup-points.
func (s *Server) ListPickupPoints(c echo.Context) error {
	views, err := s.handlers.PickupPoints.List(c.Request().Context(), queries.NewListPickupPointsQuery())
	if err != nil {
		return err
	}

	response := make([]PickupPointResponse, len(views))
	for i, view := range views {
		response[i] = toPickupPointResponse(view)
	}
	return c.JSON(http.StatusOK, response)
}

// GetPickupPoint handles GET /api/v1/pickup-points/{id}.
func (s *Server) GetPickupPoint(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetPickupPointQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.PickupPoints.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPickupPointResponse(view))
}

// CreatePickupPoint handles POST /api/v1/pickup-points.
func (s *Server) CreatePickupPoint(c echo.Context) error {
	var req CreatePickupPointRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreatePickupPointCommand(
		kernel.NewUUID(), req.Name, *req.Latitude, *req.Longitude, req.AcceptanceRadiusMeters,
	)
	if err != nil {
		return err
	}

	point, err := s.handlers.CreatePickupPoint.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPickupPointResponse(queries.NewPickupPointView(point)))
}

// UpdatePickupPoint handles PATCH /api/v1/pickup-points/{id}.
func (s *Server) UpdatePickupPoint(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePickupPointRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdatePickupPointCommand(
		id, req.Name, req.Latitude, req.Longitude, req.AcceptanceRadiusMeters,
	)
	if err != nil {
		return err
	}

	point, err := s.handlers.UpdatePickupPoint.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPickupPointResponse(queries.NewPickupPointView(point)))
}

// DeletePickupPoint handles DELETE /api/v1/pickup-points/{id}.
func (s *Server) DeletePickupPoint(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeletePickupPointCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeletePickupPoint.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
