package models

import (
	"time"

	"github.com/google/uuid"
)

type VehicleAvailability string

const (
	VehicleAvailable    VehicleAvailability = "Available"
	VehicleEnRoute      VehicleAvailability = "EnRoute"
	VehicleBusy         VehicleAvailability = "Busy"
	VehicleOutOfService VehicleAvailability = "OutOfService"
)

// Vehicle is a dispatchable response unit (ambulance).
type Vehicle struct {
	ID            uuid.UUID           `json:"id"`
	PlateNumber   string              `json:"plate_number"`
	Operator      string              `json:"operator"`
	OperatorPhone string              `json:"operator_phone,omitempty"`
	Equipment     []string            `json:"equipment,omitempty"`
	Availability  VehicleAvailability `json:"availability"`
	Location      Location            `json:"location"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Clone returns a copy safe to hand outside the registry.
func (v *Vehicle) Clone() *Vehicle {
	cp := *v
	cp.Equipment = append([]string(nil), v.Equipment...)
	return &cp
}
