package models

import (
	"time"

	"github.com/google/uuid"
)

type Recipient string

const (
	RecipientPolice      Recipient = "police"
	RecipientFamily      Recipient = "family"
	RecipientHospital    Recipient = "hospital"
	RecipientVehicleCrew Recipient = "vehicle_crew"
)

type DeliveryStatus string

const (
	DeliveryQueued    DeliveryStatus = "queued"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Notification is one outbound message produced by a case transition. Its
// delivery status is updated only by the delivery acknowledgement path; it
// never feeds back into case state.
type Notification struct {
	ID        uuid.UUID      `json:"id"`
	CaseID    uuid.UUID      `json:"case_id"`
	Recipient Recipient      `json:"recipient"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Status    DeliveryStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
