package v1

import (
	"time"

	"github.com/google/uuid"
)

// ReportAccidentRequest is the intake DTO.
// @Description Accident intake request
type ReportAccidentRequest struct {
	ReporterID       string   `json:"reporter_id" validate:"required"`
	ReporterName     string   `json:"reporter_name,omitempty"`
	ReporterPhone    string   `json:"reporter_phone,omitempty"`
	BloodGroup       string   `json:"blood_group,omitempty"`
	EmergencyContact string   `json:"emergency_contact,omitempty"`
	EmergencyPhone   string   `json:"emergency_phone,omitempty"`
	Latitude         float64  `json:"latitude" validate:"required,latitude"`
	Longitude        float64  `json:"longitude" validate:"required,longitude"`
	Address          string   `json:"address" validate:"required,min=2,max=255"`
	Description      string   `json:"description,omitempty"`
	Injuries         string   `json:"injuries,omitempty"`
	MediaRefs        []string `json:"media_refs,omitempty"`
}

// AdvanceCaseRequest carries an external transition signal.
// @Description Case transition signal
type AdvanceCaseRequest struct {
	Signal string `json:"signal" validate:"required,oneof=dispatch allocate enroute arrived"`
}

// CancelCaseRequest aborts a case.
// @Description Case cancellation request
type CancelCaseRequest struct {
	Reason string `json:"reason" validate:"required,min=2,max=255"`
}

// AckNotificationRequest is the delivery collaborator's acknowledgement.
// @Description Delivery acknowledgement callback
type AckNotificationRequest struct {
	Status string `json:"status" validate:"required,oneof=delivered failed"`
}

// StageResponse is one timeline entry.
type StageResponse struct {
	ID          uuid.UUID  `json:"id"`
	Ordinal     int        `json:"ordinal"`
	Kind        string     `json:"kind"`
	Label       string     `json:"label"`
	Status      string     `json:"status"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Description string     `json:"description,omitempty"`
}

// VerdictResponse is one recorded triage verdict.
type VerdictResponse struct {
	ID        uuid.UUID `json:"id"`
	Severity  string    `json:"severity"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// CaseResponse is the read snapshot of a case.
// @Description Case snapshot with timeline and assignments
type CaseResponse struct {
	ID           uuid.UUID         `json:"id"`
	ReporterID   string            `json:"reporter_id"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	Address      string            `json:"address"`
	ReportedAt   time.Time         `json:"reported_at"`
	Severity     string            `json:"severity,omitempty"`
	Verdicts     []VerdictResponse `json:"verdicts,omitempty"`
	Description  string            `json:"description,omitempty"`
	Injuries     string            `json:"injuries,omitempty"`
	MediaRefs    []string          `json:"media_refs,omitempty"`
	Status       string            `json:"status"`
	StatusDetail string            `json:"status_detail,omitempty"`
	Timeline     []StageResponse   `json:"timeline"`
	VehicleID    *uuid.UUID        `json:"vehicle_id,omitempty"`
	FacilityID   *uuid.UUID        `json:"facility_id,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// VehicleResponse is the dashboard view of a vehicle.
type VehicleResponse struct {
	ID           uuid.UUID `json:"id"`
	PlateNumber  string    `json:"plate_number"`
	Operator     string    `json:"operator"`
	Equipment    []string  `json:"equipment,omitempty"`
	Availability string    `json:"availability"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Address      string    `json:"address,omitempty"`
}

// FacilityResponse is the dashboard view of a facility.
type FacilityResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Address       string    `json:"address,omitempty"`
	Specialties   []string  `json:"specialties,omitempty"`
	CriticalFree  int       `json:"critical_free"`
	CriticalTotal int       `json:"critical_total"`
	GeneralFree   int       `json:"general_free"`
	GeneralTotal  int       `json:"general_total"`
	Rating        float64   `json:"rating"`
	Contact       string    `json:"contact,omitempty"`
}

// NotificationResponse is one outbound notification record.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	CaseID    uuid.UUID `json:"case_id"`
	Recipient string    `json:"recipient"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsResponse is the admin dashboard summary.
// @Description Operational statistics
type StatsResponse struct {
	ActiveCases       int `json:"active_cases"`
	AvailableVehicles int `json:"available_vehicles"`
	FreeCriticalBeds  int `json:"free_critical_beds"`
	FreeGeneralBeds   int `json:"free_general_beds"`
}
