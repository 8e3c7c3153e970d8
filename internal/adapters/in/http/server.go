package http

import (
	"context"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/logger"
	"parcels/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Handlers bundles the application use cases the HTTP adapter dispatches to.
type Handlers struct {
	// Command handlers
	RegisterParcel    commands.RegisterParcelCommandHandler
	EditParcel        commands.EditParcelCommandHandler
	DeliverParcel     commands.DeliverParcelCommandHandler
	ReportProblem     commands.ReportProblemCommandHandler
	DeleteParcel      commands.DeleteParcelCommandHandler
	CreatePickupPoint commands.CreatePickupPointCommandHandler
	UpdatePickupPoint commands.UpdatePickupPointCommandHandler
	DeletePickupPoint commands.DeletePickupPointCommandHandler
	CreateUser        commands.CreateUserCommandHandler
	DeleteUser        commands.DeleteUserCommandHandler

	// Query handlers
	ListParcels       queries.ListParcelsQueryHandler
	GetParcel         queries.GetParcelQueryHandler
	ListProblems      queries.ListProblemsQueryHandler
	FindNearestPoint  queries.FindNearestPickupPointQueryHandler
	PickupPoints      queries.PickupPointQueryHandler
	Users             queries.UserQueryHandler
	Stats             queries.StatsQueryHandler
	Login             queries.LoginQueryHandler
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the adapters the HTTP layer talks to directly.
type Dependencies struct {
	Tokens   ports.TokenIssuer
	Photos   ports.PhotoStorage
	Metrics  *metrics.ParcelMetrics
	Registry *prometheus.Registry
	Health   HealthCheck
	Logger   *logger.Logger
	// UploadsDir is served read-only under /uploads. Empty disables it.
	UploadsDir string
}

// Server owns the echo instance and maps HTTP requests onto use cases.
type Server struct {
	echo     *echo.Echo
	handlers Handlers
	tokens   ports.TokenIssuer
	photos   ports.PhotoStorage
	metrics  *metrics.ParcelMetrics
	registry *prometheus.Registry
	health   HealthCheck
	validate echo.MiddlewareFunc
	log      *logger.Logger
}

// NewServer wires routes, middleware and the OpenAPI document.
func NewServer(handlers Handlers, deps Dependencies) (*Server, error) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	parcelMetrics := deps.Metrics
	if parcelMetrics == nil {
		parcelMetrics = metrics.NewParcelMetrics(registry)
	}

	s := &Server{
		echo:     echo.New(),
		handlers: handlers,
		tokens:   deps.Tokens,
		photos:   deps.Photos,
		metrics:  parcelMetrics,
		registry: registry,
		health:   deps.Health,
		log:      log.Component("http"),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = newRequestValidator()
	s.echo.HTTPErrorHandler = s.errorHandler

	if err := s.registerRoutes(deps.UploadsDir); err != nil {
		return nil, err
	}
	return s, nil
}

// Echo exposes the underlying instance for tests and the process entry point.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start blocks serving on address until Shutdown is called.
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
