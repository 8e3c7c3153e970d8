package queries_test

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/pickuppoint"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedSource struct{ n int }

func (s fixedSource) IntN(int) int { return s.n }

type MockParcelRepository struct {
	mock.Mock
	ports.ParcelRepository
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}
func (m *MockParcelRepository) List(ctx context.Context, filter ports.ParcelListFilter) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, filter)
	ps, _ := args.Get(0).([]*parcel.Parcel)
	return ps, args.Error(1)
}
func (m *MockParcelRepository) ListProblems(ctx context.Context, issuedByID *kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, issuedByID)
	ps, _ := args.Get(0).([]*parcel.Parcel)
	return ps, args.Error(1)
}
func (m *MockParcelRepository) CountByStatus(ctx context.Context, status parcel.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockParcelRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
	ports.UserRepository
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}
func (m *MockUserRepository) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockPickupPointRepository struct {
	mock.Mock
	ports.PickupPointRepository
}

func (m *MockPickupPointRepository) Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pickuppoint.PickupPoint)
	return p, args.Error(1)
}
func (m *MockPickupPointRepository) List(ctx context.Context) ([]*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*pickuppoint.PickupPoint)
	return ps, args.Error(1)
}

// plainHasher treats the hash as "hashed:" + password.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type stubIssuer struct{ issued []ports.Principal }

func (s *stubIssuer) Issue(p ports.Principal) (ports.AccessToken, error) {
	s.issued = append(s.issued, p)
	return ports.AccessToken{Value: "token-" + p.Email, ExpiresAt: now.Add(time.Hour)}, nil
}
func (s *stubIssuer) Verify(string) (ports.Principal, error) {
	return ports.Principal{}, errors.New("not used")
}

type countingLimiter struct {
	limit    int
	attempts map[string]int
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{limit: limit, attempts: map[string]int{}}
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.attempts[key]++
	return l.attempts[key] <= l.limit, nil
}
func (l *countingLimiter) Reset(_ context.Context, key string) error {
	delete(l.attempts, key)
	return nil
}
