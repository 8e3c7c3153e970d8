package http

import (
	"context"

	"parcels/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes(uploadsDir string) error {
	doc, err := LoadOpenAPI(context.Background())
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}
	s.validate, err = requestValidation(doc)
	if err != nil {
		return err
	}

	e := s.echo
	e.Use(middleware.Recover())
	e.Use(s.requestID())
	e.Use(s.requestLogger())

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if uploadsDir != "" {
		e.Static("/uploads", uploadsDir)
	}

	api := e.Group("/api/v1", s.authenticate)

	api.POST("/auth/login", s.Login, s.validate)

	api.POST("/packages", s.CreatePackage, s.guarded(services.OpRegisterParcel)...)
	api.GET("/packages", s.ListPackages, s.guarded(services.OpListParcels)...)
	api.GET("/packages/problems", s.ListProblems, s.guarded(services.OpListProblems)...)
	api.GET("/packages/stats/receptionist", s.ReceptionistStats, s.guarded(services.OpReceptionistStats)...)
	api.GET("/packages/stats/admin", s.AdminStats, s.guarded(services.OpAdminStats)...)
	api.GET("/packages/:id", s.GetPackage, s.guarded(services.OpViewParcel)...)
	api.PATCH("/packages/:id", s.EditPackage, s.guarded(services.OpEditParcel)...)
	api.DELETE("/packages/:id", s.DeletePackage, s.guarded(services.OpDeleteParcel)...)
	api.PUT("/packages/:id/deliver", s.DeliverPackage, s.guarded(services.OpDeliverParcel)...)
	api.PUT("/packages/:id/problem", s.ReportProblem, s.guarded(services.OpReportProblem)...)

	api.GET("/pickup-points/nearest", s.FindNearestPickupPoint, s.guarded(services.OpFindNearestPoint)...)
	api.GET("/pickup-points", s.ListPickupPoints, s.guarded(services.OpViewPickupPoints)...)
	api.GET("/pickup-points/:id", s.GetPickupPoint, s.guarded(services.OpViewPickupPoints)...)
	api.POST("/pickup-points", s.CreatePickupPoint, s.guarded(services.OpManagePickupPoints)...)
	api.PATCH("/pickup-points/:id", s.UpdatePickupPoint, s.guarded(services.OpManagePickupPoints)...)
	api.DELETE("/pickup-points/:id", s.DeletePickupPoint, s.guarded(services.OpManagePickupPoints)...)

	api.POST("/users", s.CreateUser, s.guarded(services.OpManageUsers)...)
	api.GET("/users", s.ListUsers, s.guarded(services.OpManageUsers)...)
	api.GET("/users/stats/count", s.CountUsers, s.guarded(services.OpManageUsers)...)
	api.GET("/users/:id", s.GetUser, s.guarded(services.OpViewUser)...)
	api.DELETE("/users/:id", s.DeleteUser, s.guarded(services.OpManageUsers)...)

	return nil
}

// guarded runs the role check, then request validation.
func (s *Server) guarded(op services.Operation) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{s.authorize(op), s.validate}
}
