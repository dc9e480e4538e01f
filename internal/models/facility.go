package models

import (
	"time"

	"github.com/google/uuid"
)

// SlotClass selects which capacity counter of a facility is reserved.
type SlotClass string

const (
	SlotCritical SlotClass = "critical"
	SlotGeneral  SlotClass = "general"
)

// Facility is a receiving hospital with finite bed capacity.
type Facility struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      Location  `json:"location"`
	Specialties   []string  `json:"specialties,omitempty"`
	CriticalFree  int       `json:"critical_free"`
	CriticalTotal int       `json:"critical_total"`
	GeneralFree   int       `json:"general_free"`
	GeneralTotal  int       `json:"general_total"`
	Rating        float64   `json:"rating"`
	Contact       string    `json:"contact,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FreeSlots returns the free counter for the given class.
func (f *Facility) FreeSlots(class SlotClass) int {
	if class == SlotCritical {
		return f.CriticalFree
	}
	return f.GeneralFree
}

// Clone returns a copy safe to hand outside the registry.
func (f *Facility) Clone() *Facility {
	cp := *f
	cp.Specialties = append([]string(nil), f.Specialties...)
	return &cp
}
