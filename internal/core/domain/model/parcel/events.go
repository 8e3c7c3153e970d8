package parcel

import (
	"time"
)

// Event names used as message types on the event bus.
const (
	EventParcelRegistered      = "parcel.registered"
	EventParcelDelivered       = "parcel.delivered"
	EventParcelProblemReported = "parcel.problem_reported"
)

// RegisteredEvent is recorded when a receptionist registers an incoming parcel.
// The pickup code is intentionally absent.
type RegisteredEvent struct {
	ParcelID       string    `json:"parcelId"`
	TrackingNumber string    `json:"trackingNumber"`
	RecipientID    string    `json:"recipientId"`
	At             time.Time `json:"occurredAt"`
}

func (e RegisteredEvent) EventName() string { return EventParcelRegistered }
func (e RegisteredEvent) AggregateID() string { return e.ParcelID }
func (e RegisteredEvent) OccurredAt() time.Time { return e.At }

// DeliveredEvent is recorded when a parcel is handed over after code verification.
type DeliveredEvent struct {
	ParcelID    string    `json:"parcelId"`
	RecipientID string    `json:"recipientId"`
	IssuedByID  string    `json:"issuedById"`
	At          time.Time `json:"occurredAt"`
}

func (e DeliveredEvent) EventName() string { return EventParcelDelivered }
func (e DeliveredEvent) AggregateID() string { return e.ParcelID }
func (e DeliveredEvent) OccurredAt() time.Time { return e.At }

// ProblemReportedEvent is recorded each time a problem is reported, including re-reports.
type ProblemReportedEvent struct {
	ParcelID       string    `json:"parcelId"`
	PreviousStatus string    `json:"previousStatus"`
	Description    string    `json:"description"`
	At             time.Time `json:"occurredAt"`
}

func (e ProblemReportedEvent) EventName() string { return EventParcelProblemReported }
func (e ProblemReportedEvent) AggregateID() string { return e.ParcelID }
func (e ProblemReportedEvent) OccurredAt() time.Time { return e.At }
