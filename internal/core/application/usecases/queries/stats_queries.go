package queries

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var (
	ErrReceptionistStatsQueryIsNotConstructed = errors.New(
		"ReceptionistStatsQuery must be created via NewReceptionistStatsQuery constructor",
	)
	ErrAdminStatsQueryIsNotConstructed = errors.New(
		"AdminStatsQuery must be created via NewAdminStatsQuery constructor",
	)
	ErrBacklogQueryIsNotConstructed = errors.New(
		"BacklogQuery must be created via NewBacklogQuery constructor",
	)
)

// ReceptionistStatsQuery asks for the front desk counters. It has no parameters.
type ReceptionistStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewReceptionistStatsQuery creates a parameterless query for StatsQueryHandler.Receptionist.
func NewReceptionistStatsQuery() ReceptionistStatsQuery {
	return ReceptionistStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ReceptionistStatsQuery) Validate() error {
	return q.guard.Validate(ErrReceptionistStatsQueryIsNotConstructed)
}

// ReceptionistStats is the front desk dashboard.
type ReceptionistStats struct {
	// ToDeliver counts parcels still waiting in REGISTERED.
	ToDeliver int64
	// ReceivedToday counts parcels registered during the current local day.
	ReceivedToday int64
}

// AdminStatsQuery asks for the monthly admin counters.
type AdminStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewAdminStatsQuery creates a parameterless query for StatsQueryHandler.Admin.
func NewAdminStatsQuery() AdminStatsQuery {
	return AdminStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q AdminStatsQuery) Validate() error {
	return q.guard.Validate(ErrAdminStatsQueryIsNotConstructed)
}

// AdminStats is the admin dashboard: parcels registered in the current local
// month and the number of EMPLOYEE accounts.
type AdminStats struct {
	PackagesThisMonth int64
	Employees         int64
}

// BacklogQuery reads the open work at the reception, for gauges.
type BacklogQuery struct {
	guard guard.ConstructorGuard
}

// NewBacklogQuery creates a parameterless query for StatsQueryHandler.Backlog.
func NewBacklogQuery() BacklogQuery {
	return BacklogQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q BacklogQuery) Validate() error {
	return q.guard.Validate(ErrBacklogQueryIsNotConstructed)
}

// Backlog holds the number of parcels in REGISTERED and in PROBLEM.
type Backlog struct {
	AwaitingPickup int64
	WithProblems   int64
}

// StatsQueryHandler computes dashboard counters. Day and month boundaries are
// taken in the configured office time zone; both ends are inclusive.
type StatsQueryHandler struct {
	parcels  ports.ParcelRepository
	users    ports.UserRepository
	clock    ports.Clock
	location *time.Location
}

// NewStatsQueryHandler creates the handler.
//
// Parameters:
//   - parcels: read side of the parcel store
//   - users: read side of the user store, used for the employee count
//   - clock: source of "now" for the day and month windows
//   - location: office time zone; nil falls back to UTC
//
// Returns:
//   - StatsQueryHandler: ready to serve all three dashboards
func NewStatsQueryHandler(
	parcels ports.ParcelRepository,
	users ports.UserRepository,
	clock ports.Clock,
	location *time.Location,
) StatsQueryHandler {
	if location == nil {
		location = time.UTC
	}
	return StatsQueryHandler{
		parcels:  parcels,
		users:    users,
		clock:    clock,
		location: location,
	}
}

// Receptionist returns the number of parcels waiting for pickup and the number
// registered today.
//
// Example:
//
//	stats, err := handler.Receptionist(ctx, queries.NewReceptionistStatsQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d to deliver, %d received today\n", stats.ToDeliver, stats.ReceivedToday)
func (h StatsQueryHandler) Receptionist(ctx context.Context, query ReceptionistStatsQuery) (ReceptionistStats, error) {
	if err := query.Validate(); err != nil {
		return ReceptionistStats{}, err
	}

	toDeliver, err := h.parcels.CountByStatus(ctx, parcel.Registered)
	if err != nil {
		return ReceptionistStats{}, err
	}

	start, end := DayBounds(h.clock.Now(), h.location)
	receivedToday, err := h.parcels.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return ReceptionistStats{}, err
	}

	return ReceptionistStats{ToDeliver: toDeliver, ReceivedToday: receivedToday}, nil
}

// Admin returns the parcels registered in the current local month and the
// number of employees. Receptionists and admins are not counted as employees.
//
// Returns:
//   - AdminStats: both counters
//   - error: ErrAdminStatsQueryIsNotConstructed for a zero query, or a storage error
func (h StatsQueryHandler) Admin(ctx context.Context, query AdminStatsQuery) (AdminStats, error) {
	if err := query.Validate(); err != nil {
		return AdminStats{}, err
	}

	start, end := MonthBounds(h.clock.Now(), h.location)
	thisMonth, err := h.parcels.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return AdminStats{}, err
	}

	employees, err := h.users.CountByRole(ctx, user.RoleEmployee)
	if err != nil {
		return AdminStats{}, err
	}

	return AdminStats{PackagesThisMonth: thisMonth, Employees: employees}, nil
}

// Backlog counts the open work at the desk. The gauge job polls it.
func (h StatsQueryHandler) Backlog(ctx context.Context, query BacklogQuery) (Backlog, error) {
	if err := query.Validate(); err != nil {
		return Backlog{}, err
	}

	awaiting, err := h.parcels.CountByStatus(ctx, parcel.Registered)
	if err != nil {
		return Backlog{}, err
	}
	problems, err := h.parcels.CountByStatus(ctx, parcel.Problem)
	if err != nil {
		return Backlog{}, err
	}

	return Backlog{AwaitingPickup: awaiting, WithProblems: problems}, nil
}

// DayBounds returns 00:00:00 and 23:59:59.999999999 of the day containing now, in loc.
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MonthBounds returns the first instant of the month containing now and the
// last instant of its last day, in loc.
func MonthBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
