package models

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityModerate Severity = "Moderate"
	SeverityLow      Severity = "Low"
)

type CaseStatus string

const (
	CaseReported   CaseStatus = "Reported"
	CaseTriaged    CaseStatus = "Triaged"
	CaseDispatched CaseStatus = "Dispatched"
	CaseAllocated  CaseStatus = "Allocated"
	CaseInTransit  CaseStatus = "InTransit"
	CaseCompleted  CaseStatus = "Completed"
	CaseCancelled  CaseStatus = "Cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseCompleted || s == CaseCancelled
}

// TriageVerdict is one recorded classification result. Re-triage appends a
// new verdict; history is never overwritten.
type TriageVerdict struct {
	ID        uuid.UUID `json:"id"`
	Severity  Severity  `json:"severity"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Reporter holds the intake contact details used when notifying family.
type Reporter struct {
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	Phone            string `json:"phone,omitempty"`
	BloodGroup       string `json:"blood_group,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	EmergencyPhone   string `json:"emergency_phone,omitempty"`
}

// Case represents one rescue from accident report through resolution.
type Case struct {
	ID          uuid.UUID       `json:"id"`
	Reporter    Reporter        `json:"reporter"`
	Location    Location        `json:"location"`
	ReportedAt  time.Time       `json:"reported_at"`
	Severity    Severity        `json:"severity,omitempty"`
	Verdicts    []TriageVerdict `json:"verdicts,omitempty"`
	Description string          `json:"description,omitempty"`
	Injuries    string          `json:"injuries,omitempty"`
	MediaRefs   []string        `json:"media_refs,omitempty"`
	Status      CaseStatus      `json:"status"`
	// StatusDetail carries user-visible context such as "no resource
	// available" after match retries are exhausted, or a cancel reason.
	StatusDetail string     `json:"status_detail,omitempty"`
	Timeline     []Stage    `json:"timeline"`
	VehicleID    *uuid.UUID `json:"vehicle_id,omitempty"`
	FacilityID   *uuid.UUID `json:"facility_id,omitempty"`
	// FacilitySlot remembers which capacity counter was reserved so release
	// returns the slot to the right pool.
	FacilitySlot SlotClass `json:"facility_slot,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns a deep copy used for read snapshots handed outside the engine.
func (c *Case) Clone() *Case {
	cp := *c
	cp.Verdicts = append([]TriageVerdict(nil), c.Verdicts...)
	cp.MediaRefs = append([]string(nil), c.MediaRefs...)
	cp.Timeline = append([]Stage(nil), c.Timeline...)
	if c.VehicleID != nil {
		id := *c.VehicleID
		cp.VehicleID = &id
	}
	if c.FacilityID != nil {
		id := *c.FacilityID
		cp.FacilityID = &id
	}
	return &cp
}
