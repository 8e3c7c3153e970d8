package commands_test

import (
	"context"
	"time"

	"parcels/internal/core/application/usecases/commands"
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

func codeGenerator(n int) parcel.PickupCodeGenerator {
	return parcel.NewRandomPickupCodeGenerator(fixedSource{n: n})
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}
func (m *MockParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
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

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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
func (m *MockUserRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
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

type MockPickupPointRepository struct{ mock.Mock }

func (m *MockPickupPointRepository) Add(ctx context.Context, p *pickuppoint.PickupPoint) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPickupPointRepository) Update(ctx context.Context, p *pickuppoint.PickupPoint) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPickupPointRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPickupPointRepository) Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pickuppoint.PickupPoint)
	return p, args.Error(1)
}
func (m *MockPickupPointRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pickuppoint.PickupPoint)
	return p, args.Error(1)
}
func (m *MockPickupPointRepository) List(ctx context.Context) ([]*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*pickuppoint.PickupPoint)
	return ps, args.Error(1)
}

type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockParcelUoW struct{ mockTx }

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}
func (m *MockParcelUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockPickupPointUoW struct{ mockTx }

func (m *MockPickupPointUoW) PickupPointRepository() ports.PickupPointRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupPointRepository)
}

type MockPickupPointUoWFactory struct{ mock.Mock }

func (m *MockPickupPointUoWFactory) Create() commands.PickupPointUoW {
	args := m.Called()
	return args.Get(0).(commands.PickupPointUoW)
}

type MockUserUoW struct{ mockTx }

func (m *MockUserUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}
func (m *MockPasswordHasher) Compare(hash, plain string) error {
	args := m.Called(hash, plain)
	return args.Error(0)
}
