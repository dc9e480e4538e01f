package models

import (
	"time"

	"github.com/google/uuid"
)

type StageKind string

const (
	StageReported   StageKind = "reported"
	StageTriaged    StageKind = "triaged"
	StageDispatched StageKind = "dispatched"
	StageAllocated  StageKind = "allocated"
	StageInTransit  StageKind = "in_transit"
	StageCompleted  StageKind = "completed"
)

type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in-progress"
	StageDone       StageStatus = "completed"
)

// Stage is one entry in a case timeline. Stages are totally ordered by
// Ordinal; a stage is never completed while a lower ordinal is still open.
type Stage struct {
	ID          uuid.UUID   `json:"id"`
	Ordinal     int         `json:"ordinal"`
	Kind        StageKind   `json:"kind"`
	Label       string      `json:"label"`
	Status      StageStatus `json:"status"`
	Timestamp   *time.Time  `json:"timestamp,omitempty"`
	Description string      `json:"description,omitempty"`
}
