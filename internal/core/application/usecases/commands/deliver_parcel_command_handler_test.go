package commands_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registeredParcel(t *testing.T, code int) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.Attributes{
		TrackingNumber: "DHL-1",
		Sender:         "Zalando",
		PickupPoint:    "Reception",
		RecipientID:    kernel.NewUUID(),
	}, codeGenerator(code), now.Add(-24*time.Hour))
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestNewDeliverParcelCommand(t *testing.T) {
	_, err := commands.NewDeliverParcelCommand(kernel.NewUUID(), "", kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewDeliverParcelCommand(kernel.NewUUID(), "123456", kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewDeliverParcelCommand(kernel.NewUUID(), "123456", kernel.NewUUID())
	require.NoError(t, err)
	assert.Equal(t, "123456", cmd.PickupCode())
}

func TestDeliverParcelCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	p := registeredParcel(t, 123456)
	actor := kernel.NewUUID()
	cmd, err := commands.NewDeliverParcelCommand(p.ID(), "123456", actor)
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		parcels.On("Update", ctx, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	h := commands.NewDeliverParcelCommandHandler(factory, fixedClock{t: now})
	delivered, err := h.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, parcel.Delivered, delivered.Status())
	require.NotNil(t, delivered.IssuedByID())
	assert.True(t, delivered.IssuedByID().IsEqual(actor))
	assert.Equal(t, now, delivered.UpdatedAt())

	parcels.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeliverParcelCommandHandler_Handle_WrongCode(t *testing.T) {
	// Arrange
	ctx := t.Context()
	p := registeredParcel(t, 123456)
	cmd, err := commands.NewDeliverParcelCommand(p.ID(), "654321", kernel.NewUUID())
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	h := commands.NewDeliverParcelCommandHandler(factory, fixedClock{t: now})
	_, err = h.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrInvalidCode)
	assert.Equal(t, parcel.Registered, p.Status())
	parcels.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestDeliverParcelCommandHandler_Handle_NotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeliverParcelCommand(id, "123456", kernel.NewUUID())
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("parcel", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	h := commands.NewDeliverParcelCommandHandler(factory, fixedClock{t: now})
	_, err = h.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeliverParcelCommandHandler_Handle_UpdateConflict(t *testing.T) {
	// Arrange
	ctx := t.Context()
	p := registeredParcel(t, 123456)
	cmd, err := commands.NewDeliverParcelCommand(p.ID(), "123456", kernel.NewUUID())
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcels).Once(),
		parcels.On("GetForUpdate", ctx, p.ID()).Return(p, nil).Once(),
		parcels.On("Update", ctx, p).Return(errs.NewConflictError("parcel", p.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Act
	h := commands.NewDeliverParcelCommandHandler(factory, fixedClock{t: now})
	_, err = h.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDeliverParcelCommandHandler_Handle_SecondDeliveryIsRejected(t *testing.T) {
	// Given a parcel that was just handed out
	ctx := t.Context()
	p := registeredParcel(t, 42)
	store := newMemoryParcelStore(p)
	h := commands.NewDeliverParcelCommandHandler(store, fixedClock{t: now})

	cmd, err := commands.NewDeliverParcelCommand(p.ID(), "000042", kernel.NewUUID())
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// When the same code is presented again
	_, err = h.Handle(ctx, cmd)

	// Then the status does not change
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, parcel.Delivered, store.status(p.ID()))
}

func TestDeliverParcelCommandHandler_Handle_ConcurrentDeliveriesSucceedOnce(t *testing.T) {
	// Given one registered parcel
	ctx := t.Context()
	p := registeredParcel(t, 42)
	store := newMemoryParcelStore(p)
	h := commands.NewDeliverParcelCommandHandler(store, fixedClock{t: now})

	// When several desks deliver it at once
	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewDeliverParcelCommand(p.ID(), "000042", kernel.NewUUID())
			if err != nil {
				panic(err)
			}
			_, err = h.Handle(ctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	// Then exactly one delivery wins
	assert.Equal(t, 1, successes)
	require.Len(t, failures, attempts-1)
	for _, err := range failures {
		assert.True(t, errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrInvalidState), err.Error())
	}
	assert.Equal(t, parcel.Delivered, store.status(p.ID()))
}
