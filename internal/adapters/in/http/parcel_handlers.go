package http

import (
	"context"
	"errors"
	"net/http"

	"parcels/internal/adapters/out/filestorage"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

const photoField = "photo"

// CreatePackage handles POST /api/v1/packages. The body is JSON, or multipart
// form fields with an optional photo file.
func (s *Server) CreatePackage(c echo.Context) error {
	var req CreatePackageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	recipientID, err := parseUUID("recipientId", req.RecipientID)
	if err != nil {
		return err
	}

	photoRef := req.PhotoReference
	uploaded := ""
	if isMultipart(c.Request()) {
		uploaded, err = s.savePhoto(c)
		if err != nil {
			return err
		}
		if uploaded != "" {
			photoRef = uploaded
		}
	}

	cmd, err := commands.NewRegisterParcelCommand(
		kernel.NewUUID(), req.TrackingNumber, req.Sender, req.PickupPoint, recipientID, photoRef,
	)
	if err != nil {
		s.discardPhoto(ctx, uploaded)
		return err
	}

	p, err := s.handlers.RegisterParcel.Handle(ctx, cmd)
	if err != nil {
		s.discardPhoto(ctx, uploaded)
		return err
	}
	s.metrics.IncRegistered()

	return c.JSON(http.StatusCreated, toPackageResponse(queries.NewParcelView(p, viewerFrom(c), true)))
}

// savePhoto stores the uploaded photo, if any, and returns its reference.
func (s *Server) savePhoto(c echo.Context) (string, error) {
	header, err := c.FormFile(photoField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(photoField, err)
	}
	if s.photos == nil {
		return "", errs.NewInvalidOperationError("photo uploads are disabled")
	}
	if !filestorage.IsAllowedContentType(header.Header.Get(echo.HeaderContentType)) {
		return "", errs.NewValueIsInvalidErrorWithCause(photoField,
			errors.New("only image/jpeg, image/png and image/gif are accepted"))
	}

	file, err := header.Open()
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(photoField, err)
	}
	defer file.Close()

	return s.photos.Save(c.Request().Context(), header.Filename, file)
}

func (s *Server) discardPhoto(ctx context.Context, reference string) {
	if reference == "" || s.photos == nil {
		return
	}
	if err := s.photos.Delete(ctx, reference); err != nil {
		s.log.Warn(ctx, "discard uploaded photo", err)
	}
}

// ListPackages handles GET /api/v1/packages.
func (s *Server) ListPackages(c echo.Context) error {
	recipientID, err := queryUUID(c, "recipientId")
	if err != nil {
		return err
	}
	search, err := queryString(c, "search")
	if err != nil {
		return err
	}

	query, err := queries.NewListParcelsQuery(viewerFrom(c), recipientID, search)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPackageResponses(views))
}

// GetPackage handles GET /api/v1/packages/{id}.
func (s *Server) GetPackage(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetParcelQuery(viewerFrom(c), id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetParcel.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPackageResponse(view))
}

// EditPackage handles PATCH /api/v1/packages/{id}.
func (s *Server) EditPackage(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req EditPackageRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	changes := parcel.Changes{
		TrackingNumber: req.TrackingNumber,
		Sender:         req.Sender,
		PickupPoint:    req.PickupPoint,
		PhotoReference: req.PhotoReference,
	}
	if req.RecipientID != nil {
		recipientID, parseErr := parseUUID("recipientId", *req.RecipientID)
		if parseErr != nil {
			return parseErr
		}
		changes.RecipientID = &recipientID
	}

	cmd, err := commands.NewEditParcelCommand(id, changes)
	if err != nil {
		return err
	}

	p, err := s.handlers.EditParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPackageResponse(queries.NewParcelView(p, viewerFrom(c), false)))
}

// DeletePackage handles DELETE /api/v1/packages/{id}.
func (s *Server) DeletePackage(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteParcelCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteParcel.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeliverPackage handles PUT /api/v1/packages/{id}/deliver.
func (s *Server) DeliverPackage(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req DeliverPackageRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	principal, _ := principalFrom(c)
	cmd, err := commands.NewDeliverParcelCommand(id, req.PickupCode, principal.UserID)
	if err != nil {
		return err
	}

	p, err := s.handlers.DeliverParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		s.recordRejectedDelivery(err)
		return err
	}
	s.metrics.IncDelivered()

	return c.JSON(http.StatusOK, toPackageResponse(queries.NewParcelView(p, viewerFrom(c), false)))
}

func (s *Server) recordRejectedDelivery(err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidState):
		s.metrics.IncDeliveryRejected(metrics.ReasonAlreadyDelivered)
	case errors.Is(err, errs.ErrInvalidCode):
		s.metrics.IncDeliveryRejected(metrics.ReasonInvalidCode)
	case errors.Is(err, errs.ErrConflict):
		s.metrics.IncDeliveryRejected(metrics.ReasonConflict)
	}
}

// ReportProblem handles PUT /api/v1/packages/{id}/problem.
func (s *Server) ReportProblem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ReportProblemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	principal, _ := principalFrom(c)
	cmd, err := commands.NewReportProblemCommand(id, req.Description, principal.UserID, principal.Role)
	if err != nil {
		return err
	}

	p, err := s.handlers.ReportProblem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPackageResponse(queries.NewParcelView(p, viewerFrom(c), false)))
}

// ListProblems handles GET /api/v1/packages/problems.
func (s *Server) ListProblems(c echo.Context) error {
	issuedByID, err := queryUUID(c, "issuedById")
	if err != nil {
		return err
	}

	query, err := queries.NewListProblemsQuery(viewerFrom(c), issuedByID)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListProblems.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPackageResponses(views))
}

// ReceptionistStats handles GET /api/v1/packages/stats/receptionist.
func (s *Server) ReceptionistStats(c echo.Context) error {
	stats, err := s.handlers.Stats.Receptionist(c.Request().Context(), queries.NewReceptionistStatsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReceptionistStatsResponse{
		ToDeliver:     stats.ToDeliver,
		ReceivedToday: stats.ReceivedToday,
	})
}

// AdminStats handles GET /api/v1/packages/stats/admin.
func (s *Server) AdminStats(c echo.Context) error {
	stats, err := s.handlers.Stats.Admin(c.Request().Context(), queries.NewAdminStatsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AdminStatsResponse{
		PackagesThisMonth: stats.PackagesThisMonth,
		Employees:         stats.Employees,
	})
}
