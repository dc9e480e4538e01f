package engine

import (
	"errors"
	"time"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when a caller requests an illegal state
// change. The case is left untouched.
var ErrInvalidTransition = errors.New("invalid case transition")

// statusOrder is the single source of truth for the case lifecycle. Stage
// ordinal i corresponds to statusOrder[i]; entering statusOrder[i] completes
// stage i and starts stage i+1, so case status and timeline can never drift
// apart.
var statusOrder = []models.CaseStatus{
	models.CaseReported,
	models.CaseTriaged,
	models.CaseDispatched,
	models.CaseAllocated,
	models.CaseInTransit,
	models.CaseCompleted,
}

type stageSpec struct {
	kind        models.StageKind
	label       string
	description string
}

var stageSpecs = []stageSpec{
	{models.StageReported, "SOS Reported", "Emergency alert received from location"},
	{models.StageTriaged, "Severity Triage", "Severity classification of the report"},
	{models.StageDispatched, "Ambulance Dispatched", "Response vehicle assigned and en route"},
	{models.StageAllocated, "Hospital Allocated", "Receiving facility bed reserved"},
	{models.StageInTransit, "En Route to Hospital", "Patient picked up, heading to facility"},
	{models.StageCompleted, "Patient Reached Hospital", "Ambulance arrived at emergency ward"},
}

func statusIndex(s models.CaseStatus) int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// NewTimeline builds the initial timeline: the report stage is already
// completed, triage is in progress.
func NewTimeline(now time.Time) []models.Stage {
	stages := make([]models.Stage, len(stageSpecs))
	for i, spec := range stageSpecs {
		stages[i] = models.Stage{
			ID:          uuid.New(),
			Ordinal:     i,
			Kind:        spec.kind,
			Label:       spec.label,
			Status:      models.StagePending,
			Description: spec.description,
		}
	}
	ts := now
	stages[0].Status = models.StageDone
	stages[0].Timestamp = &ts
	ts2 := now
	stages[1].Status = models.StageInProgress
	stages[1].Timestamp = &ts2
	return stages
}

// Advance moves the case to the target status. It returns false without
// error when the case is already at or past the target (re-entrant calls are
// idempotent no-ops), and ErrInvalidTransition when the target would skip a
// state or the case is terminal.
func Advance(c *models.Case, target models.CaseStatus, now time.Time) (bool, error) {
	ti := statusIndex(target)
	if ti <= 0 {
		return false, ErrInvalidTransition
	}
	if c.Status == models.CaseCancelled {
		return false, ErrInvalidTransition
	}
	ci := statusIndex(c.Status)
	if ti <= ci {
		return false, nil
	}
	if ti != ci+1 {
		return false, ErrInvalidTransition
	}

	completeStage(c, ti, now)
	c.Status = target
	c.UpdatedAt = now
	return true, nil
}

// Cancel moves a non-terminal case to Cancelled. Cancelling an already
// cancelled case is an idempotent no-op; cancelling a completed case is
// invalid.
func Cancel(c *models.Case, reason string, now time.Time) (bool, error) {
	if c.Status == models.CaseCancelled {
		return false, nil
	}
	if c.Status == models.CaseCompleted {
		return false, ErrInvalidTransition
	}

	// The open stage goes back to pending; the completed prefix stays
	// contiguous.
	for i := range c.Timeline {
		if c.Timeline[i].Status == models.StageInProgress {
			c.Timeline[i].Status = models.StagePending
			c.Timeline[i].Timestamp = nil
		}
	}
	c.Status = models.CaseCancelled
	c.StatusDetail = reason
	c.UpdatedAt = now
	return true, nil
}

// completeStage marks stage ti completed and the following stage in
// progress.
func completeStage(c *models.Case, ti int, now time.Time) {
	for i := range c.Timeline {
		switch {
		case c.Timeline[i].Ordinal == ti:
			ts := now
			c.Timeline[i].Status = models.StageDone
			c.Timeline[i].Timestamp = &ts
		case c.Timeline[i].Ordinal == ti+1:
			ts := now
			c.Timeline[i].Status = models.StageInProgress
			c.Timeline[i].Timestamp = &ts
		}
	}
}

// NextStatus returns the status following s in the lifecycle, or "" when s
// is terminal or unknown.
func NextStatus(s models.CaseStatus) models.CaseStatus {
	i := statusIndex(s)
	if i < 0 || i+1 >= len(statusOrder) {
		return ""
	}
	return statusOrder[i+1]
}
