package cmd

import (
	"context"
	"errors"
	"time"

	httpin "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/auth"
	"parcels/internal/adapters/out/clock"
	"parcels/internal/adapters/out/filestorage"
	"parcels/internal/adapters/out/kafka"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/pickuppointrepo"
	"parcels/internal/adapters/out/postgres/userrepo"
	"parcels/internal/adapters/out/redis"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/jobs"
	"parcels/internal/pkg/logger"
	"parcels/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters of one process and hands out use case
// handlers wired to them.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	log        *logger.Logger

	clock    ports.Clock
	location *time.Location
	hasher   ports.PasswordHasher
	issuer   *auth.JWTIssuer
	limiter  ports.LoginAttemptLimiter
	photos   *filestorage.LocalStorage

	registry *prometheus.Registry
	metrics  *metrics.ParcelMetrics

	redisClient *goredis.Client
	publisher   *kafka.EventPublisher
}

// NewCompositionRoot builds the outbound adapters. Redis and Kafka are optional:
// without a Redis URL logins are not throttled, without brokers events are logged.
//
// On error every adapter opened so far is closed again. The database stays
// open; it belongs to the caller.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, log *logger.Logger) (_ *CompositionRoot, err error) {
	if gormDB == nil {
		return nil, errors.New("gorm db is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	location, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:      cfg,
		gormDB:   gormDB,
		log:      log,
		clock:    clock.System{},
		location: location,
		hasher:   auth.NewBcryptHasher(bcrypt.DefaultCost),
		limiter:  redis.NopLimiter{},
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = metrics.NewParcelMetrics(c.registry)

	c.issuer, err = auth.NewJWTIssuer(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	}, nil)
	if err != nil {
		return nil, err
	}

	c.photos, err = filestorage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.MaxBytes())
	if err != nil {
		return nil, err
	}

	if cfg.Redis.URL != "" {
		c.redisClient, err = redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		c.limiter = redis.NewLoginLimiter(c.redisClient, redis.LimiterConfig{
			MaxAttempts: cfg.Redis.LoginMaxAttempts,
			Window:      cfg.Redis.LoginWindow,
		})
	}

	var publisher ports.EventPublisher = kafka.NewLogPublisher(log)
	if len(cfg.Kafka.Brokers) > 0 {
		c.publisher, err = kafka.NewEventPublisher(kafka.PublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		if err != nil {
			return nil, err
		}
		publisher = c.publisher
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, log)

	return c, nil
}

// Close releases the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.publisher != nil {
		errList = append(errList, c.publisher.Close())
	}
	if c.redisClient != nil {
		errList = append(errList, c.redisClient.Close())
	}
	return errors.Join(errList...)
}

// Registry is the Prometheus registry served on /metrics.
func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pickupPointUoWFactory() commands.PickupPointUoWFactory {
	return FuncPickupPointUoWFactory(func() commands.PickupPointUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) parcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(c.gormDB, nil)
}

func (c *CompositionRoot) pickupPointRepository() ports.PickupPointRepository {
	return pickuppointrepo.NewGormPickupPointRepository(c.gormDB)
}

func (c *CompositionRoot) userRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(c.gormDB)
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	return commands.NewRegisterParcelCommandHandler(c.parcelUoWFactory(), parcel.NewSecurePickupCodeGenerator(), c.clock)
}

func (c *CompositionRoot) CreateEditParcelCommandHandler() commands.EditParcelCommandHandler {
	return commands.NewEditParcelCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeliverParcelCommandHandler() commands.DeliverParcelCommandHandler {
	return commands.NewDeliverParcelCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReportProblemCommandHandler() commands.ReportProblemCommandHandler {
	return commands.NewReportProblemCommandHandler(c.parcelUoWFactory(), c.cfg.Lifecycle.ProblemPolicy(), c.clock)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateCreatePickupPointCommandHandler() commands.CreatePickupPointCommandHandler {
	return commands.NewCreatePickupPointCommandHandler(c.pickupPointUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdatePickupPointCommandHandler() commands.UpdatePickupPointCommandHandler {
	return commands.NewUpdatePickupPointCommandHandler(c.pickupPointUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeletePickupPointCommandHandler() commands.DeletePickupPointCommandHandler {
	return commands.NewDeletePickupPointCommandHandler(c.pickupPointUoWFactory())
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.userUoWFactory(), c.hasher, c.clock)
}

func (c *CompositionRoot) CreateDeleteUserCommandHandler() commands.DeleteUserCommandHandler {
	return commands.NewDeleteUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.parcelRepository())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.parcelRepository())
}

func (c *CompositionRoot) CreateListProblemsQueryHandler() queries.ListProblemsQueryHandler {
	return queries.NewListProblemsQueryHandler(c.parcelRepository())
}

func (c *CompositionRoot) CreateFindNearestPickupPointQueryHandler() queries.FindNearestPickupPointQueryHandler {
	return queries.NewFindNearestPickupPointQueryHandler(c.pickupPointRepository(), services.NewPickupPointLocator())
}

func (c *CompositionRoot) CreatePickupPointQueryHandler() queries.PickupPointQueryHandler {
	return queries.NewPickupPointQueryHandler(c.pickupPointRepository())
}

func (c *CompositionRoot) CreateUserQueryHandler() queries.UserQueryHandler {
	return queries.NewUserQueryHandler(c.userRepository())
}

func (c *CompositionRoot) CreateStatsQueryHandler() queries.StatsQueryHandler {
	return queries.NewStatsQueryHandler(c.parcelRepository(), c.userRepository(), c.clock, c.location)
}

func (c *CompositionRoot) CreateLoginQueryHandler() queries.LoginQueryHandler {
	return queries.NewLoginQueryHandler(c.userRepository(), c.hasher, c.issuer, c.limiter)
}

// CreateHandlers builds every use case handler the HTTP layer serves.
func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterParcel:    c.CreateRegisterParcelCommandHandler(),
		EditParcel:        c.CreateEditParcelCommandHandler(),
		DeliverParcel:     c.CreateDeliverParcelCommandHandler(),
		ReportProblem:     c.CreateReportProblemCommandHandler(),
		DeleteParcel:      c.CreateDeleteParcelCommandHandler(),
		CreatePickupPoint: c.CreateCreatePickupPointCommandHandler(),
		UpdatePickupPoint: c.CreateUpdatePickupPointCommandHandler(),
		DeletePickupPoint: c.CreateDeletePickupPointCommandHandler(),
		CreateUser:        c.CreateCreateUserCommandHandler(),
		DeleteUser:        c.CreateDeleteUserCommandHandler(),

		ListParcels:      c.CreateListParcelsQueryHandler(),
		GetParcel:        c.CreateGetParcelQueryHandler(),
		ListProblems:     c.CreateListProblemsQueryHandler(),
		FindNearestPoint: c.CreateFindNearestPickupPointQueryHandler(),
		PickupPoints:     c.CreatePickupPointQueryHandler(),
		Users:            c.CreateUserQueryHandler(),
		Stats:            c.CreateStatsQueryHandler(),
		Login:            c.CreateLoginQueryHandler(),
	}
}

// HealthCheck pings the database and, when configured, Redis.
func (c *CompositionRoot) HealthCheck(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if c.redisClient != nil {
		return c.redisClient.Ping(ctx).Err()
	}
	return nil
}

// CreateServer builds the echo server with authentication, metrics, health and
// the uploads directory wired in.
func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	return httpin.NewServer(c.CreateHandlers(), httpin.Dependencies{
		Tokens:     c.issuer,
		Photos:     c.photos,
		Metrics:    c.metrics,
		Registry:   c.registry,
		Health:     c.HealthCheck,
		Logger:     c.log,
		UploadsDir: c.photos.Dir(),
	})
}

// CreateBacklogGaugeJob builds the cron job that refreshes the backlog gauges on
// Jobs.BacklogSchedule.
func (c *CompositionRoot) CreateBacklogGaugeJob() *jobs.BacklogGaugeJob {
	return jobs.NewBacklogGaugeJob(
		c.CreateStatsQueryHandler(),
		c.metrics,
		metrics.NewCronJobMetrics(c.registry),
		c.cfg.Jobs.BacklogSchedule,
		c.log,
	)
}

// CreateJobManager returns a manager holding every background job. The caller
// starts and stops it.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateBacklogGaugeJob())
}

// FuncParcelUoWFactory adapts a function to commands.ParcelUoWFactory.
type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

// FuncPickupPointUoWFactory adapts a function to commands.PickupPointUoWFactory.
type FuncPickupPointUoWFactory func() commands.PickupPointUoW

func (f FuncPickupPointUoWFactory) Create() commands.PickupPointUoW {
	return f()
}

// FuncUserUoWFactory adapts a function to commands.UserUoWFactory.
type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
