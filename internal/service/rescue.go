package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	"github.com/garudaops/rescue_orchestration_system/internal/engine"
	"github.com/garudaops/rescue_orchestration_system/internal/matcher"
	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/notification"
	"github.com/garudaops/rescue_orchestration_system/internal/registry"
	"github.com/garudaops/rescue_orchestration_system/internal/triage"
	"github.com/garudaops/rescue_orchestration_system/internal/worker"
)

// noResourceDetail is surfaced on the case once match retries are exhausted.
const noResourceDetail = "no resource available"

// Signal drives an externally-requested case transition.
type Signal string

const (
	SignalDispatch Signal = "dispatch"
	SignalAllocate Signal = "allocate"
	SignalEnRoute  Signal = "enroute"
	SignalArrived  Signal = "arrived"
)

// ParseSignal validates a wire-format signal.
func ParseSignal(s string) (Signal, error) {
	switch Signal(s) {
	case SignalDispatch, SignalAllocate, SignalEnRoute, SignalArrived:
		return Signal(s), nil
	}
	return "", fmt.Errorf("unknown signal %q", s)
}

// CaseRepository is the storage collaborator contract for cases, including
// the read cache.
type CaseRepository interface {
	CreateCase(ctx context.Context, c *models.Case) error
	GetCaseByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	UpdateCase(ctx context.Context, c *models.Case) error
	ListCases(ctx context.Context, page, pageSize int) ([]*models.Case, error)
	CountActiveCases(ctx context.Context) (int, error)
	GetCaseFromCache(ctx context.Context, id uuid.UUID) (*models.Case, error)
	SetCaseCache(ctx context.Context, c *models.Case) error
	InvalidateCaseCache(ctx context.Context, id uuid.UUID) error
}

// ResourceRepository loads the fleet at boot and persists registry state
// changes.
type ResourceRepository interface {
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
	ListFacilities(ctx context.Context) ([]*models.Facility, error)
	SaveVehicleState(ctx context.Context, v *models.Vehicle) error
	SaveFacilityState(ctx context.Context, f *models.Facility) error
}

// NotificationRepository stores outbound notification records.
type NotificationRepository interface {
	SaveNotification(ctx context.Context, n *models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus) error
	ListNotificationsByCase(ctx context.Context, caseID uuid.UUID) ([]*models.Notification, error)
}

// Notifier emits the notifications of a committed transition.
type Notifier interface {
	CaseTransitioned(ctx context.Context, snap notification.Snapshot) error
}

// Stats is the admin dashboard summary.
type Stats struct {
	ActiveCases       int `json:"active_cases"`
	AvailableVehicles int `json:"available_vehicles"`
	FreeCriticalBeds  int `json:"free_critical_beds"`
	FreeGeneralBeds   int `json:"free_general_beds"`
}

// RescueService is the orchestration facade: the single mutation path for
// cases. All reads by presentation collaborators go through snapshots it
// returns.
type RescueService interface {
	WarmRegistry(ctx context.Context) error
	StartWorkers(ctx context.Context)
	ReportAccident(ctx context.Context, c *models.Case) error
	GetCase(ctx context.Context, id uuid.UUID) (*models.Case, error)
	ListCases(ctx context.Context, page, pageSize int) ([]*models.Case, error)
	Advance(ctx context.Context, id uuid.UUID, signal Signal) (*models.Case, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Case, error)
	Retriage(ctx context.Context, id uuid.UUID) (*models.Case, error)
	ListNotifications(ctx context.Context, caseID uuid.UUID) ([]*models.Notification, error)
	AcknowledgeDelivery(ctx context.Context, id uuid.UUID, status models.DeliveryStatus) error
	Vehicles() []*models.Vehicle
	Facilities() []*models.Facility
	Stats(ctx context.Context) (*Stats, error)
}

type rescueService struct {
	repo          CaseRepository
	resources     ResourceRepository
	notifications NotificationRepository
	registry      *registry.Registry
	matcher       *matcher.Matcher
	classifier    triage.Classifier
	notifier      Notifier
	retries       *worker.Pool
	logger        *logrus.Logger
	cfg           *config.Config

	locks caseLocks

	// spawn runs async follow-up work (triage, match retries). Tests
	// replace it to run synchronously.
	spawn func(f func())
}

type assignmentRetry struct {
	caseID  uuid.UUID
	attempt int
}

func NewRescueService(
	repo CaseRepository,
	resources ResourceRepository,
	notifications NotificationRepository,
	reg *registry.Registry,
	m *matcher.Matcher,
	classifier triage.Classifier,
	notifier Notifier,
	logger *logrus.Logger,
	cfg *config.Config,
) RescueService {
	s := &rescueService{
		repo:          repo,
		resources:     resources,
		notifications: notifications,
		registry:      reg,
		matcher:       m,
		classifier:    classifier,
		notifier:      notifier,
		logger:        logger,
		cfg:           cfg,
		locks:         caseLocks{m: make(map[uuid.UUID]*sync.Mutex)},
		spawn:         func(f func()) { go f() },
	}
	s.retries = worker.NewPool(cfg.MatchWorkers, cfg.MatchWorkers*16, s.processRetry)
	return s
}

// StartWorkers launches the match-retry pool. Separate from construction so
// tests can drive retries synchronously.
func (s *rescueService) StartWorkers(ctx context.Context) {
	s.retries.Start(ctx)
}

// WarmRegistry loads the fleet and facility state from storage into the
// in-memory registry. Called once at boot.
func (s *rescueService) WarmRegistry(ctx context.Context) error {
	vehicles, err := s.resources.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("service: could not load vehicles: %w", err)
	}
	for _, v := range vehicles {
		s.registry.UpsertVehicle(v)
	}

	facilities, err := s.resources.ListFacilities(ctx)
	if err != nil {
		return fmt.Errorf("service: could not load facilities: %w", err)
	}
	for _, f := range facilities {
		s.registry.UpsertFacility(f)
	}

	s.logger.WithFields(logrus.Fields{
		"vehicles":   len(vehicles),
		"facilities": len(facilities),
	}).Info("Resource registry loaded")
	return nil
}

// ReportAccident validates nothing itself (the handler rejects malformed
// intake before a case exists); it creates the case and kicks off async
// triage.
func (s *rescueService) ReportAccident(ctx context.Context, c *models.Case) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "rescue",
		"method":   "ReportAccident",
		"reporter": c.Reporter.ID,
	})
	log.Info("Opening new rescue case")

	now := time.Now().UTC()
	c.ID = uuid.New()
	c.Status = models.CaseReported
	c.ReportedAt = now
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Timeline = engine.NewTimeline(now)

	if err := s.repo.CreateCase(ctx, c); err != nil {
		log.WithError(err).Error("Failed to create case in repository")
		return fmt.Errorf("service: could not create case: %w", err)
	}

	log.WithField("case_id", c.ID).Info("Case created, scheduling triage")
	caseID := c.ID
	s.spawn(func() { s.runTriage(caseID) })
	return nil
}

// runTriage classifies the report without holding the case lock, then
// commits the verdict under it. A case cancelled while classification was in
// flight is left untouched.
func (s *rescueService) runTriage(caseID uuid.UUID) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "runTriage",
		"case_id": caseID,
	})

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.TriageTimeout+5*time.Second)
	defer cancel()

	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		log.WithError(err).Error("Failed to load case for triage")
		return
	}

	severity, err := s.classifier.Classify(ctx, triage.Report{
		Location:    c.Location,
		Description: c.Description,
		Injuries:    c.Injuries,
		MediaRefs:   c.MediaRefs,
	})
	if err != nil {
		log.WithError(err).Error("Classification aborted")
		return
	}

	c, changed := s.commitVerdict(ctx, log, caseID, severity)
	if c == nil {
		return
	}
	log.WithField("severity", severity).Info("Triage verdict recorded")

	if changed {
		s.notify(ctx, c)
		s.spawn(func() { s.attemptAssignment(caseID, 0) })
	}
}

// commitVerdict records the verdict under the case lock. Returns nil when the
// case went terminal while classification was in flight.
func (s *rescueService) commitVerdict(ctx context.Context, log *logrus.Entry, caseID uuid.UUID, severity models.Severity) (*models.Case, bool) {
	unlock := s.locks.lock(caseID)
	defer unlock()

	// Reload: the case may have moved while classification was running.
	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		log.WithError(err).Error("Failed to reload case for triage commit")
		return nil, false
	}
	if c.Status.IsTerminal() {
		log.Info("Case reached a terminal state during classification, dropping verdict")
		return nil, false
	}

	now := time.Now().UTC()
	c.Verdicts = append(c.Verdicts, models.TriageVerdict{
		ID:        uuid.New(),
		Severity:  severity,
		Source:    s.classifierSource(),
		CreatedAt: now,
	})
	c.Severity = severity

	changed := false
	if c.Status == models.CaseReported {
		changed, err = engine.Advance(c, models.CaseTriaged, now)
		if err != nil {
			log.WithError(err).Error("Failed to advance case to Triaged")
			return nil, false
		}
	}

	if err := s.saveCase(ctx, c); err != nil {
		log.WithError(err).Error("Failed to save triaged case")
		return nil, false
	}
	return c, changed
}

func (s *rescueService) classifierSource() string {
	if s.cfg.TriageURL != "" {
		return "ai-classifier"
	}
	return "keyword-classifier"
}

// attemptAssignment drives the automatic dispatch + allocation chain after
// triage, rescheduling itself with exponential backoff while resources are
// exhausted.
func (s *rescueService) attemptAssignment(caseID uuid.UUID, attempt int) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "attemptAssignment",
		"case_id": caseID,
		"attempt": attempt,
	})

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RoutingTimeout+30*time.Second)
	defer cancel()

	_, err := s.Advance(ctx, caseID, SignalDispatch)
	if err == nil {
		_, err = s.Advance(ctx, caseID, SignalAllocate)
	}
	if err == nil {
		return
	}
	if errors.Is(err, engine.ErrInvalidTransition) {
		// Cancelled or externally advanced meanwhile; nothing to retry.
		return
	}
	if !errors.Is(err, matcher.ErrNoCandidate) {
		log.WithError(err).Error("Assignment attempt failed")
		return
	}

	if attempt+1 >= s.cfg.MatchMaxAttempts {
		log.Warn("Match retries exhausted")
		s.markResourceExhausted(ctx, caseID)
		return
	}
	if !s.retries.Submit(worker.Job{Payload: assignmentRetry{caseID: caseID, attempt: attempt + 1}}) {
		log.Warn("Retry queue full, dropping match retry")
		s.markResourceExhausted(ctx, caseID)
	}
}

// processRetry is the worker-pool processor: back off, then try again.
func (s *rescueService) processRetry(ctx context.Context, job worker.Job) error {
	retry, ok := job.Payload.(assignmentRetry)
	if !ok {
		return fmt.Errorf("unexpected retry payload %T", job.Payload)
	}

	delay := s.cfg.MatchBaseDelay << (retry.attempt - 1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}

	s.attemptAssignment(retry.caseID, retry.attempt)
	return nil
}

// markResourceExhausted records the user-visible "no resource available"
// detail after retries run out. The case stays where it is; a later manual
// advance signal retries the match.
func (s *rescueService) markResourceExhausted(ctx context.Context, caseID uuid.UUID) {
	unlock := s.locks.lock(caseID)
	defer unlock()

	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil || c.Status.IsTerminal() {
		return
	}
	c.StatusDetail = noResourceDetail
	c.UpdatedAt = time.Now().UTC()
	if err := s.saveCase(ctx, c); err != nil {
		s.logger.WithError(err).WithField("case_id", caseID).Error("Failed to record resource exhaustion")
	}
}

// GetCase returns a read snapshot, cache first.
func (s *rescueService) GetCase(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "GetCase",
		"case_id": id,
	})

	cached, err := s.repo.GetCaseFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Case cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get case from repository")
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}

	if err := s.repo.SetCaseCache(ctx, c); err != nil {
		log.WithError(err).Warn("Failed to cache case")
	}
	return c, nil
}

// ListCases returns the paginated case history.
func (s *rescueService) ListCases(ctx context.Context, page, pageSize int) ([]*models.Case, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "rescue",
		"method":    "ListCases",
		"page":      page,
		"page_size": pageSize,
	})

	cases, err := s.repo.ListCases(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list cases from repository")
		return nil, fmt.Errorf("service: could not list cases: %w", err)
	}
	return cases, nil
}

// Advance applies an external signal to the case. The matcher search for
// dispatch/allocate runs without the case lock; the commit step re-checks
// the status so a cancellation racing the search releases the fresh
// reservation instead of assigning it.
func (s *rescueService) Advance(ctx context.Context, id uuid.UUID, signal Signal) (*models.Case, error) {
	switch signal {
	case SignalDispatch:
		return s.advanceWithVehicle(ctx, id)
	case SignalAllocate:
		return s.advanceWithFacility(ctx, id)
	case SignalEnRoute:
		return s.advanceSimple(ctx, id, models.CaseInTransit)
	case SignalArrived:
		return s.advanceArrived(ctx, id)
	}
	return nil, fmt.Errorf("service: %w: unknown signal %q", engine.ErrInvalidTransition, signal)
}

func (s *rescueService) advanceWithVehicle(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "Advance",
		"signal":  SignalDispatch,
		"case_id": id,
	})

	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}
	if done, ret, err := s.precheck(c, models.CaseTriaged, models.CaseDispatched); done {
		return ret, err
	}

	// Candidate search may block on the routing collaborator; no case lock
	// is held here.
	vehicle, err := s.matcher.MatchVehicle(ctx, c)
	if err != nil {
		if errors.Is(err, matcher.ErrNoCandidate) {
			log.Warn("No vehicle candidate available")
		}
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	c, err = s.repo.GetCaseByID(ctx, id)
	if err != nil {
		s.rollbackVehicle(ctx, vehicle.ID)
		return nil, fmt.Errorf("service: could not reload case: %w", err)
	}
	if done, ret, err := s.precheck(c, models.CaseTriaged, models.CaseDispatched); done {
		// Lost the race against cancel or a concurrent dispatch; hand the
		// reservation back.
		s.rollbackVehicle(ctx, vehicle.ID)
		return ret, err
	}

	now := time.Now().UTC()
	c.VehicleID = &vehicle.ID
	if _, err := engine.Advance(c, models.CaseDispatched, now); err != nil {
		s.rollbackVehicle(ctx, vehicle.ID)
		return nil, err
	}
	if c.StatusDetail == noResourceDetail {
		c.StatusDetail = ""
	}
	if err := s.saveCase(ctx, c); err != nil {
		s.rollbackVehicle(ctx, vehicle.ID)
		return nil, err
	}
	s.persistVehicle(ctx, vehicle.ID)

	log.WithField("vehicle_id", vehicle.ID).Info("Case dispatched")
	s.notify(ctx, c)
	return c, nil
}

func (s *rescueService) advanceWithFacility(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "Advance",
		"signal":  SignalAllocate,
		"case_id": id,
	})

	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}
	if done, ret, err := s.precheck(c, models.CaseDispatched, models.CaseAllocated); done {
		return ret, err
	}

	facility, slot, err := s.matcher.MatchFacility(ctx, c)
	if err != nil {
		if errors.Is(err, matcher.ErrNoCandidate) {
			log.Warn("No facility candidate available")
		}
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	c, err = s.repo.GetCaseByID(ctx, id)
	if err != nil {
		s.rollbackFacility(ctx, facility.ID, slot)
		return nil, fmt.Errorf("service: could not reload case: %w", err)
	}
	if done, ret, err := s.precheck(c, models.CaseDispatched, models.CaseAllocated); done {
		s.rollbackFacility(ctx, facility.ID, slot)
		return ret, err
	}

	now := time.Now().UTC()
	c.FacilityID = &facility.ID
	c.FacilitySlot = slot
	if _, err := engine.Advance(c, models.CaseAllocated, now); err != nil {
		s.rollbackFacility(ctx, facility.ID, slot)
		return nil, err
	}
	if c.StatusDetail == noResourceDetail {
		c.StatusDetail = ""
	}
	if err := s.saveCase(ctx, c); err != nil {
		s.rollbackFacility(ctx, facility.ID, slot)
		return nil, err
	}
	s.persistFacility(ctx, facility.ID)

	log.WithFields(logrus.Fields{
		"facility_id": facility.ID,
		"slot_class":  slot,
	}).Info("Facility allocated")
	s.notify(ctx, c)
	return c, nil
}

// advanceSimple handles signals that carry no resource work (enroute).
func (s *rescueService) advanceSimple(ctx context.Context, id uuid.UUID, target models.CaseStatus) (*models.Case, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}

	changed, err := engine.Advance(c, target, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return c, nil
	}

	if target == models.CaseInTransit && c.VehicleID != nil {
		if err := s.registry.MarkVehicleBusy(*c.VehicleID); err != nil {
			s.logger.WithError(err).WithField("vehicle_id", *c.VehicleID).Warn("Failed to mark vehicle busy")
		} else {
			s.persistVehicle(ctx, *c.VehicleID)
		}
	}

	if err := s.saveCase(ctx, c); err != nil {
		return nil, err
	}
	s.notify(ctx, c)
	return c, nil
}

// advanceArrived completes the case and releases both resources.
func (s *rescueService) advanceArrived(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}

	changed, err := engine.Advance(c, models.CaseCompleted, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return c, nil
	}

	// Snapshot before release so the completion notification shows the
	// facility that actually received the patient.
	snap := s.snapshot(c)
	s.releaseResources(ctx, c)

	if err := s.saveCase(ctx, c); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "Advance",
		"case_id": id,
	}).Info("Case completed")

	if err := s.notifier.CaseTransitioned(ctx, snap); err != nil {
		s.logger.WithError(err).WithField("case_id", c.ID).Warn("Notification dispatch incomplete")
	}
	return c, nil
}

// Cancel aborts a non-terminal case and returns any held resources.
func (s *rescueService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Case, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "rescue",
		"method":  "Cancel",
		"case_id": id,
	})

	unlock := s.locks.lock(id)
	defer unlock()

	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}

	changed, err := engine.Cancel(c, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return c, nil
	}

	snap := s.snapshot(c)
	s.releaseResources(ctx, c)

	if err := s.saveCase(ctx, c); err != nil {
		return nil, err
	}
	log.WithField("reason", reason).Info("Case cancelled")

	if err := s.notifier.CaseTransitioned(ctx, snap); err != nil {
		log.WithError(err).Warn("Notification dispatch incomplete")
	}
	return c, nil
}

// Retriage re-runs classification for a non-terminal case; the new verdict
// is appended to the audit history.
func (s *rescueService) Retriage(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}
	if c.Status.IsTerminal() {
		return nil, engine.ErrInvalidTransition
	}

	s.spawn(func() { s.runTriage(id) })
	return c, nil
}

func (s *rescueService) ListNotifications(ctx context.Context, caseID uuid.UUID) ([]*models.Notification, error) {
	notifications, err := s.notifications.ListNotificationsByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}
	return notifications, nil
}

// AcknowledgeDelivery records the delivery collaborator's out-of-band
// acknowledgement.
func (s *rescueService) AcknowledgeDelivery(ctx context.Context, id uuid.UUID, status models.DeliveryStatus) error {
	if status != models.DeliveryDelivered && status != models.DeliveryFailed {
		return fmt.Errorf("service: invalid delivery acknowledgement status %q", status)
	}
	if err := s.notifications.UpdateNotificationStatus(ctx, id, status); err != nil {
		return fmt.Errorf("service: could not update delivery status: %w", err)
	}
	return nil
}

func (s *rescueService) Vehicles() []*models.Vehicle {
	return s.registry.Vehicles()
}

func (s *rescueService) Facilities() []*models.Facility {
	return s.registry.Facilities()
}

func (s *rescueService) Stats(ctx context.Context) (*Stats, error) {
	active, err := s.repo.CountActiveCases(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not count active cases: %w", err)
	}

	stats := &Stats{ActiveCases: active}
	for _, v := range s.registry.Vehicles() {
		if v.Availability == models.VehicleAvailable {
			stats.AvailableVehicles++
		}
	}
	for _, f := range s.registry.Facilities() {
		stats.FreeCriticalBeds += f.CriticalFree
		stats.FreeGeneralBeds += f.GeneralFree
	}
	return stats, nil
}

// precheck implements the idempotence and legality rules shared by the
// resource-assigning signals: already at/past the target is a no-op
// returning the current state, anything other than the expected source state
// is invalid.
func (s *rescueService) precheck(c *models.Case, from, target models.CaseStatus) (bool, *models.Case, error) {
	if c.Status == from {
		return false, nil, nil
	}
	if c.Status == models.CaseCancelled {
		return true, nil, engine.ErrInvalidTransition
	}
	// Re-entrant call: already dispatched/allocated or further along.
	if statusReached(c.Status, target) {
		return true, c, nil
	}
	return true, nil, engine.ErrInvalidTransition
}

// statusReached reports whether current is at or past target in the
// lifecycle order.
func statusReached(current, target models.CaseStatus) bool {
	for st := target; st != ""; st = engine.NextStatus(st) {
		if st == current {
			return true
		}
	}
	return false
}

// releaseResources hands any held vehicle and facility slot back to the
// registry and clears the assignment; terminal cases reference no resources.
func (s *rescueService) releaseResources(ctx context.Context, c *models.Case) {
	if c.VehicleID != nil {
		if err := s.registry.ReleaseVehicle(*c.VehicleID); err != nil {
			s.logger.WithError(err).WithField("vehicle_id", *c.VehicleID).Warn("Vehicle release failed")
		} else {
			s.persistVehicle(ctx, *c.VehicleID)
		}
		c.VehicleID = nil
	}
	if c.FacilityID != nil {
		slot := c.FacilitySlot
		if slot == "" {
			slot = models.SlotGeneral
		}
		if err := s.registry.ReleaseFacilitySlot(*c.FacilityID, slot); err != nil {
			s.logger.WithError(err).WithField("facility_id", *c.FacilityID).Warn("Facility slot release failed")
		} else {
			s.persistFacility(ctx, *c.FacilityID)
		}
		c.FacilityID = nil
		c.FacilitySlot = ""
	}
}

// rollbackVehicle releases a reservation that failed to commit.
func (s *rescueService) rollbackVehicle(ctx context.Context, vehicleID uuid.UUID) {
	if err := s.registry.ReleaseVehicle(vehicleID); err != nil {
		s.logger.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to roll back vehicle reservation")
		return
	}
	s.persistVehicle(ctx, vehicleID)
}

func (s *rescueService) rollbackFacility(ctx context.Context, facilityID uuid.UUID, slot models.SlotClass) {
	if err := s.registry.ReleaseFacilitySlot(facilityID, slot); err != nil {
		s.logger.WithError(err).WithField("facility_id", facilityID).Error("Failed to roll back facility reservation")
		return
	}
	s.persistFacility(ctx, facilityID)
}

func (s *rescueService) persistVehicle(ctx context.Context, id uuid.UUID) {
	v, err := s.registry.Vehicle(id)
	if err != nil {
		return
	}
	if err := s.resources.SaveVehicleState(ctx, v); err != nil {
		s.logger.WithError(err).WithField("vehicle_id", id).Error("Failed to persist vehicle state")
	}
}

func (s *rescueService) persistFacility(ctx context.Context, id uuid.UUID) {
	f, err := s.registry.Facility(id)
	if err != nil {
		return
	}
	if err := s.resources.SaveFacilityState(ctx, f); err != nil {
		s.logger.WithError(err).WithField("facility_id", id).Error("Failed to persist facility state")
	}
}

// saveCase persists the case and drops the read cache.
func (s *rescueService) saveCase(ctx context.Context, c *models.Case) error {
	if err := s.repo.UpdateCase(ctx, c); err != nil {
		return fmt.Errorf("service: could not update case: %w", err)
	}
	if err := s.repo.InvalidateCaseCache(ctx, c.ID); err != nil {
		s.logger.WithError(err).WithField("case_id", c.ID).Warn("Failed to invalidate case cache")
	}
	return nil
}

// snapshot builds the point-in-time view handed to the notifier.
func (s *rescueService) snapshot(c *models.Case) notification.Snapshot {
	snap := notification.Snapshot{Case: c.Clone()}
	if c.VehicleID != nil {
		if v, err := s.registry.Vehicle(*c.VehicleID); err == nil {
			snap.Vehicle = v
		}
	}
	if c.FacilityID != nil {
		if f, err := s.registry.Facility(*c.FacilityID); err == nil {
			snap.Facility = f
		}
	}
	return snap
}

func (s *rescueService) notify(ctx context.Context, c *models.Case) {
	if err := s.notifier.CaseTransitioned(ctx, s.snapshot(c)); err != nil {
		s.logger.WithError(err).WithField("case_id", c.ID).Warn("Notification dispatch incomplete")
	}
}

// caseLocks serializes mutations per case. Entries live for the process
// lifetime; the case population is bounded by active rescues.
type caseLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]*sync.Mutex
}

func (l *caseLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.m[id]
	if !ok {
		m = &sync.Mutex{}
		l.m[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
