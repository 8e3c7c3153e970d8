package queries

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var (
	ErrListPickupPointsQueryIsNotConstructed = errors.New(
		"ListPickupPointsQuery must be created via NewListPickupPointsQuery constructor",
	)
	ErrGetPickupPointQueryIsNotConstructed = errors.New(
		"GetPickupPointQuery must be created via NewGetPickupPointQuery constructor",
	)
)

// ListPickupPointsQuery asks for the whole pickup point directory.
type ListPickupPointsQuery struct {
	guard guard.ConstructorGuard
}

// NewListPickupPointsQuery creates a parameterless query.
func NewListPickupPointsQuery() ListPickupPointsQuery {
	return ListPickupPointsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListPickupPointsQuery) Validate() error {
	return q.guard.Validate(ErrListPickupPointsQueryIsNotConstructed)
}

// GetPickupPointQuery reads one pickup point by id.
type GetPickupPointQuery struct {
	pointID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPickupPointQuery returns ValueIsRequired for the zero UUID.
func NewGetPickupPointQuery(pointID kernel.UUID) (GetPickupPointQuery, error) {
	if err := pointID.Validate(); err != nil {
		return GetPickupPointQuery{}, err
	}
	return GetPickupPointQuery{pointID: pointID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPickupPointQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupPointQueryIsNotConstructed)
}

func (q GetPickupPointQuery) PointID() kernel.UUID {
	return q.pointID
}

// PickupPointQueryHandler serves the directory reads.
type PickupPointQueryHandler struct {
	points ports.PickupPointRepository
}

// NewPickupPointQueryHandler creates the handler over the pickup point store.
func NewPickupPointQueryHandler(points ports.PickupPointRepository) PickupPointQueryHandler {
	return PickupPointQueryHandler{points: points}
}

// List returns the directory in insertion order.
func (h PickupPointQueryHandler) List(ctx context.Context, query ListPickupPointsQuery) ([]PickupPointView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.points.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]PickupPointView, 0, len(all))
	for _, p := range all {
		views = append(views, NewPickupPointView(p))
	}
	return views, nil
}

// Get returns the point or NotFound.
func (h PickupPointQueryHandler) Get(ctx context.Context, query GetPickupPointQuery) (PickupPointView, error) {
	if err := query.Validate(); err != nil {
		return PickupPointView{}, err
	}

	p, err := h.points.Get(ctx, query.PointID())
	if err != nil {
		return PickupPointView{}, err
	}
	return NewPickupPointView(p), nil
}
