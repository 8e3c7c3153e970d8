package http

import (
	"time"

	"parcels/internal/core/application/usecases/queries"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   string       `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// CreatePackageRequest is accepted as JSON or as multipart form fields.
type CreatePackageRequest struct {
	TrackingNumber string `json:"trackingNumber" form:"trackingNumber" validate:"required"`
	Sender         string `json:"sender" form:"sender" validate:"required"`
	PickupPoint    string `json:"pickupPoint" form:"pickupPoint" validate:"required"`
	RecipientID    string `json:"recipientId" form:"recipientId" validate:"required,uuid"`
	PhotoReference string `json:"photoReference" form:"photoReference"`
}

// EditPackageRequest carries only the fields to change.
type EditPackageRequest struct {
	TrackingNumber *string `json:"trackingNumber"`
	Sender         *string `json:"sender"`
	PickupPoint    *string `json:"pickupPoint"`
	RecipientID    *string `json:"recipientId" validate:"omitempty,uuid"`
	PhotoReference *string `json:"photoReference"`
}

type DeliverPackageRequest struct {
	PickupCode string `json:"pickupCode" validate:"required"`
}

type ReportProblemRequest struct {
	Description string `json:"description" validate:"required"`
}

// PackageResponse is the wire form of a parcel. PickupCode is empty unless the
// caller is the recipient or an admin.
type PackageResponse struct {
	ID                 string    `json:"id"`
	TrackingNumber     string    `json:"trackingNumber"`
	Sender             string    `json:"sender"`
	PickupPoint        string    `json:"pickupPoint"`
	PhotoReference     string    `json:"photoReference,omitempty"`
	PickupCode         string    `json:"pickupCode,omitempty"`
	Status             string    `json:"status"`
	RecipientID        string    `json:"recipientId"`
	IssuedByID         *string   `json:"issuedById,omitempty"`
	ProblemDescription string    `json:"problemDescription,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ReceptionistStatsResponse struct {
	ToDeliver     int64 `json:"toDeliver"`
	ReceivedToday int64 `json:"receivedToday"`
}

type AdminStatsResponse struct {
	PackagesThisMonth int64 `json:"packagesThisMonth"`
	Employees         int64 `json:"employees"`
}

type CreatePickupPointRequest struct {
	Name                   string   `json:"name" validate:"required"`
	Latitude               *float64 `json:"latitude" validate:"required"`
	Longitude              *float64 `json:"longitude" validate:"required"`
	AcceptanceRadiusMeters *float64 `json:"acceptanceRadiusMeters"`
}

// UpdatePickupPointRequest is a partial update. Latitude and longitude travel
// together.
type UpdatePickupPointRequest struct {
	Name                   *string  `json:"name"`
	Latitude               *float64 `json:"latitude"`
	Longitude              *float64 `json:"longitude"`
	AcceptanceRadiusMeters *float64 `json:"acceptanceRadiusMeters"`
}

type PickupPointResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Latitude               float64   `json:"latitude"`
	Longitude              float64   `json:"longitude"`
	AcceptanceRadiusMeters float64   `json:"acceptanceRadiusMeters"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// NearestPickupPointResponse omits point and distance when nothing qualifies.
type NearestPickupPointResponse struct {
	Found          bool                 `json:"found"`
	Point          *PickupPointResponse `json:"point,omitempty"`
	DistanceMeters *float64             `json:"distanceMeters,omitempty"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// UserResponse never includes the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toPackageResponse(view queries.ParcelView) PackageResponse {
	response := PackageResponse{
		ID:                 view.ID.String(),
		TrackingNumber:     view.TrackingNumber,
		Sender:             view.Sender,
		PickupPoint:        view.PickupPoint,
		PhotoReference:     view.PhotoReference,
		PickupCode:         view.PickupCode,
		Status:             view.Status,
		RecipientID:        view.RecipientID.String(),
		ProblemDescription: view.ProblemDescription,
		CreatedAt:          view.CreatedAt,
		UpdatedAt:          view.UpdatedAt,
	}
	if view.IssuedByID != nil {
		issuedBy := view.IssuedByID.String()
		response.IssuedByID = &issuedBy
	}
	return response
}

func toPackageResponses(views []queries.ParcelView) []PackageResponse {
	response := make([]PackageResponse, len(views))
	for i, view := range views {
		response[i] = toPackageResponse(view)
	}
	return response
}

func toPickupPointResponse(view queries.PickupPointView) PickupPointResponse {
	return PickupPointResponse{
		ID:                     view.ID.String(),
		Name:                   view.Name,
		Latitude:               view.Latitude,
		Longitude:              view.Longitude,
		AcceptanceRadiusMeters: view.AcceptanceRadiusMeters,
		CreatedAt:              view.CreatedAt,
		UpdatedAt:              view.UpdatedAt,
	}
}

func toUserResponse(view queries.UserView) UserResponse {
	return UserResponse{
		ID:        view.ID.String(),
		Email:     view.Email,
		FullName:  view.FullName,
		Role:      view.Role.String(),
		CreatedAt: view.CreatedAt,
	}
}
