package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var base = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type fixedSource struct{ n int }

func (s fixedSource) IntN(int) int { return s.n }

type recordingTracker struct {
	ids []kernel.UUID
}

func (r *recordingTracker) TrackAggregate(id kernel.UUID, _ any) {
	r.ids = append(r.ids, id)
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&parcelrepo.ParcelDTO{}))
	return db
}

func newParcel(t *testing.T, sender, tracking string, recipient kernel.UUID, createdAt time.Time) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.Attributes{
		TrackingNumber: tracking,
		Sender:         sender,
		PickupPoint:    "Front desk",
		RecipientID:    recipient,
	}, parcel.NewRandomPickupCodeGenerator(fixedSource{n: 42}), createdAt)
	require.NoError(t, err)
	return p
}

func TestRepository_AddAndGet(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tracker := &recordingTracker{}
	repo := parcelrepo.NewGormParcelRepository(openDB(t), tracker)

	recipient := kernel.NewUUID()
	p := newParcel(t, "Zalando", "TRK-1", recipient, base)

	// Act
	require.NoError(t, repo.Add(ctx, p))

	loaded, err := repo.Get(ctx, p.ID())
	require.NoError(t, err)

	// Assert
	assert.True(t, loaded.ID().IsEqual(p.ID()))
	assert.Equal(t, "Zalando", loaded.Sender())
	assert.Equal(t, "TRK-1", loaded.TrackingNumber())
	assert.Equal(t, "000042", loaded.PickupCode().String())
	assert.Equal(t, parcel.Registered, loaded.Status())
	assert.True(t, loaded.RecipientID().IsEqual(recipient))
	assert.Nil(t, loaded.IssuedByID())
	assert.True(t, loaded.CreatedAt().Equal(base))
	assert.Equal(t, 0, loaded.Version())
	assert.Empty(t, loaded.DomainEvents())

	require.Len(t, tracker.ids, 1)
	assert.True(t, tracker.ids[0].IsEqual(p.ID()))
}

func TestRepository_GetMissing(t *testing.T) {
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	_, err := repo.Get(context.Background(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = repo.GetForUpdate(context.Background(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepository_AddDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	p := newParcel(t, "DHL", "TRK-1", kernel.NewUUID(), base)
	require.NoError(t, repo.Add(ctx, p))

	err := repo.Add(ctx, p)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestRepository_UpdateBumpsVersionAndRejectsStaleWrites(t *testing.T) {
	// Given a parcel read twice, once for update
	ctx := context.Background()
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	p := newParcel(t, "DHL", "TRK-1", kernel.NewUUID(), base)
	require.NoError(t, repo.Add(ctx, p))

	first, err := repo.GetForUpdate(ctx, p.ID())
	require.NoError(t, err)
	stale, err := repo.Get(ctx, p.ID())
	require.NoError(t, err)

	// When the locked copy is delivered and saved
	actor := kernel.NewUUID()
	require.NoError(t, first.Deliver("000042", actor, base.Add(time.Hour)))
	require.NoError(t, repo.Update(ctx, first))

	// Then the version moves on
	stored, err := repo.Get(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, parcel.Delivered, stored.Status())
	assert.Equal(t, 1, stored.Version())
	require.NotNil(t, stored.IssuedByID())
	assert.True(t, stored.IssuedByID().IsEqual(actor))
	assert.True(t, stored.UpdatedAt().Equal(base.Add(time.Hour)))

	// And the stale copy can no longer be written
	require.NoError(t, stale.Deliver("000042", kernel.NewUUID(), base.Add(2*time.Hour)))
	err = repo.Update(ctx, stale)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestRepository_UpdateMissingIsNotFound(t *testing.T) {
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	p := newParcel(t, "DHL", "TRK-1", kernel.NewUUID(), base)
	err := repo.Update(context.Background(), p)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	p := newParcel(t, "DHL", "TRK-1", kernel.NewUUID(), base)
	require.NoError(t, repo.Add(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID()))
	_, err := repo.Get(ctx, p.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	err = repo.Delete(ctx, p.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepository_ListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	alice := kernel.NewUUID()
	bob := kernel.NewUUID()

	oldest := newParcel(t, "Zalando SE", "TRK-1", alice, base)
	other := newParcel(t, "Amazon", "TRK-2", alice, base.Add(time.Minute))
	newest := newParcel(t, "ZALANDO outlet", "TRK-3", alice, base.Add(2*time.Minute))
	foreign := newParcel(t, "zalando", "TRK-4", bob, base.Add(3*time.Minute))
	for _, p := range []*parcel.Parcel{oldest, other, newest, foreign} {
		require.NoError(t, repo.Add(ctx, p))
	}

	t.Run("recipient and search", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ParcelListFilter{RecipientID: &alice, Search: "zalando"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].ID().IsEqual(newest.ID()))
		assert.True(t, got[1].ID().IsEqual(oldest.ID()))
	})

	t.Run("search matches tracking number", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ParcelListFilter{Search: "trk-2"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].ID().IsEqual(other.ID()))
	})

	t.Run("no filter returns all newest first", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ParcelListFilter{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.True(t, got[0].ID().IsEqual(foreign.ID()))
		assert.True(t, got[3].ID().IsEqual(oldest.ID()))
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ParcelListFilter{Search: "%"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRepository_ListProblems(t *testing.T) {
	ctx := context.Background()
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	receptionist := kernel.NewUUID()

	issued := newParcel(t, "DHL", "TRK-1", kernel.NewUUID(), base)
	require.NoError(t, issued.Deliver("000042", receptionist, base.Add(time.Minute)))
	require.NoError(t, issued.ReportProblem("damaged", parcel.PermissiveProblemReports, base.Add(2*time.Minute)))

	fresh := newParcel(t, "UPS", "TRK-2", kernel.NewUUID(), base)
	require.NoError(t, fresh.ReportProblem("missing label", parcel.PermissiveProblemReports, base.Add(3*time.Minute)))

	fine := newParcel(t, "GLS", "TRK-3", kernel.NewUUID(), base)

	for _, p := range []*parcel.Parcel{issued, fresh, fine} {
		require.NoError(t, repo.Add(ctx, p))
	}

	all, err := repo.ListProblems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].ID().IsEqual(fresh.ID()))
	assert.Equal(t, "missing label", all[0].ProblemDescription())

	mine, err := repo.ListProblems(ctx, &receptionist)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].ID().IsEqual(issued.ID()))
}

func TestRepository_Counts(t *testing.T) {
	ctx := context.Background()
	repo := parcelrepo.NewGormParcelRepository(openDB(t), nil)

	start := base
	end := base.Add(24*time.Hour - time.Nanosecond)

	atStart := newParcel(t, "A", "1", kernel.NewUUID(), start)
	atEnd := newParcel(t, "B", "2", kernel.NewUUID(), end)
	before := newParcel(t, "C", "3", kernel.NewUUID(), start.Add(-time.Second))
	after := newParcel(t, "D", "4", kernel.NewUUID(), end.Add(time.Nanosecond))
	require.NoError(t, after.Deliver("000042", kernel.NewUUID(), end.Add(time.Hour)))

	for _, p := range []*parcel.Parcel{atStart, atEnd, before, after} {
		require.NoError(t, repo.Add(ctx, p))
	}

	registered, err := repo.CountByStatus(ctx, parcel.Registered)
	require.NoError(t, err)
	assert.Equal(t, int64(3), registered)

	delivered, err := repo.CountByStatus(ctx, parcel.Delivered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), delivered)

	inRange, err := repo.CountCreatedBetween(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inRange)
}
