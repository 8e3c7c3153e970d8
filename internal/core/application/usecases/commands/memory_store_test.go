package commands_test

import (
	"context"
	"sync"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// memoryParcelStore keeps parcels as snapshots and applies the same optimistic
// version check as the SQL repository. It has no row locks, so concurrent
// handlers race on the version.
type memoryParcelStore struct {
	mu      sync.Mutex
	parcels map[kernel.UUID]parcel.RestoreParams
}

func newMemoryParcelStore(seed ...*parcel.Parcel) *memoryParcelStore {
	s := &memoryParcelStore{parcels: make(map[kernel.UUID]parcel.RestoreParams)}
	for _, p := range seed {
		s.parcels[p.ID()] = snapshot(p, p.Version())
	}
	return s
}

func snapshot(p *parcel.Parcel, version int) parcel.RestoreParams {
	return parcel.RestoreParams{
		ID:                 p.ID(),
		TrackingNumber:     p.TrackingNumber(),
		Sender:             p.Sender(),
		PickupPoint:        p.PickupPoint(),
		PhotoReference:     p.PhotoReference(),
		PickupCode:         p.PickupCode().String(),
		Status:             p.Status(),
		RecipientID:        p.RecipientID(),
		IssuedByID:         p.IssuedByID(),
		ProblemDescription: p.ProblemDescription(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
		Version:            version,
	}
}

func (s *memoryParcelStore) status(id kernel.UUID) parcel.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parcels[id].Status
}

func (s *memoryParcelStore) Create() commands.ParcelUoW {
	return &memoryParcelUoW{store: s}
}

// memoryParcelUoW buffers writes and applies them on Commit.
type memoryParcelUoW struct {
	store   *memoryParcelStore
	pending []*parcel.Parcel
}

func (u *memoryParcelUoW) Begin(context.Context) error { return nil }

func (u *memoryParcelUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, p := range u.pending {
		stored, ok := u.store.parcels[p.ID()]
		if !ok || stored.Version != p.Version() {
			return errs.NewConflictError("parcel", p.ID().String())
		}
	}
	for _, p := range u.pending {
		u.store.parcels[p.ID()] = snapshot(p, p.Version()+1)
	}
	u.pending = nil
	return nil
}

func (u *memoryParcelUoW) Rollback(context.Context) error {
	u.pending = nil
	return nil
}

func (u *memoryParcelUoW) ParcelRepository() ports.ParcelRepository {
	return memoryParcelRepository{uow: u}
}

func (u *memoryParcelUoW) UserRepository() ports.UserRepository {
	return nil
}

type memoryParcelRepository struct {
	ports.ParcelRepository

	uow *memoryParcelUoW
}

func (r memoryParcelRepository) GetForUpdate(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	r.uow.store.mu.Lock()
	params, ok := r.uow.store.parcels[id]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id.String())
	}
	// widen the window between read and write so racing handlers overlap
	time.Sleep(time.Millisecond)
	return parcel.RestoreParcel(params)
}

func (r memoryParcelRepository) Update(_ context.Context, p *parcel.Parcel) error {
	r.uow.pending = append(r.uow.pending, p)
	return nil
}
