package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	"github.com/garudaops/rescue_orchestration_system/internal/engine"
	"github.com/garudaops/rescue_orchestration_system/internal/matcher"
	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/notification"
	"github.com/garudaops/rescue_orchestration_system/internal/registry"
	"github.com/garudaops/rescue_orchestration_system/internal/service/mocks"
	"github.com/garudaops/rescue_orchestration_system/internal/triage"
)

// classifierFunc adapts a function to the triage.Classifier interface.
type classifierFunc func(ctx context.Context, report triage.Report) (models.Severity, error)

func (f classifierFunc) Classify(ctx context.Context, report triage.Report) (models.Severity, error) {
	return f(ctx, report)
}

// testRig wires a rescueService against a one-case in-memory store and a real
// registry. spawn runs synchronously so async triage and assignment finish
// before the triggering call returns.
type testRig struct {
	svc           *rescueService
	repo          *mocks.MockCaseRepository
	notifications *mocks.MockNotificationRepository
	registry      *registry.Registry

	mu     sync.Mutex
	stored *models.Case
	snaps  []notification.Snapshot
}

// storedCase reads the stored case safely while retry workers are running.
func (rig *testRig) storedCase() *models.Case {
	rig.mu.Lock()
	defer rig.mu.Unlock()
	if rig.stored == nil {
		return nil
	}
	return rig.stored.Clone()
}

func newTestRescueService(t *testing.T) *testRig {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCaseRepository(ctrl)
	resources := mocks.NewMockResourceRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		SearchRadiusMeters: 15000,
		DistanceWeight:     0.4,
		CapacityWeight:     0.25,
		SpecialtyWeight:    0.2,
		RatingWeight:       0.15,
		MatchMaxAttempts:   1,
		MatchBaseDelay:     time.Millisecond,
		MatchWorkers:       1,
	}

	reg := registry.New()
	m := matcher.New(reg, nil, cfg, logger)

	svc := NewRescueService(repo, resources, notifications, reg, m,
		triage.NewKeywordClassifier(), notifier, logger, cfg).(*rescueService)
	svc.spawn = func(f func()) { f() }

	rig := &testRig{
		svc:           svc,
		repo:          repo,
		notifications: notifications,
		registry:      reg,
	}

	repo.EXPECT().CreateCase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Case) error {
			rig.mu.Lock()
			defer rig.mu.Unlock()
			rig.stored = c.Clone()
			return nil
		}).AnyTimes()
	repo.EXPECT().GetCaseByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.Case, error) {
			rig.mu.Lock()
			defer rig.mu.Unlock()
			if rig.stored == nil || rig.stored.ID != id {
				return nil, fmt.Errorf("case with id %s not found", id)
			}
			return rig.stored.Clone(), nil
		}).AnyTimes()
	repo.EXPECT().UpdateCase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Case) error {
			rig.mu.Lock()
			defer rig.mu.Unlock()
			rig.stored = c.Clone()
			return nil
		}).AnyTimes()
	repo.EXPECT().InvalidateCaseCache(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	resources.EXPECT().SaveVehicleState(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	resources.EXPECT().SaveFacilityState(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	notifier.EXPECT().CaseTransitioned(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snap notification.Snapshot) error {
			rig.mu.Lock()
			defer rig.mu.Unlock()
			rig.snaps = append(rig.snaps, snap)
			return nil
		}).AnyTimes()

	return rig
}

// seedCase plants a stored case advanced to the given status.
func (rig *testRig) seedCase(status models.CaseStatus, severity models.Severity) *models.Case {
	now := time.Now().UTC()
	c := &models.Case{
		ID:         uuid.New(),
		Reporter:   models.Reporter{ID: "reporter-1", Name: "A. Okafor"},
		Location:   models.Location{Latitude: 12.9700, Longitude: 77.5900, Address: "MG Road"},
		ReportedAt: now,
		Severity:   severity,
		Status:     models.CaseReported,
		Timeline:   engine.NewTimeline(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	targets := []models.CaseStatus{
		models.CaseTriaged, models.CaseDispatched, models.CaseAllocated,
		models.CaseInTransit, models.CaseCompleted,
	}
	for _, target := range targets {
		if c.Status == status {
			break
		}
		if _, err := engine.Advance(c, target, now); err != nil {
			panic(err)
		}
	}
	rig.stored = c
	return c.Clone()
}

func (rig *testRig) addVehicle() *models.Vehicle {
	v := &models.Vehicle{
		ID:           uuid.New(),
		PlateNumber:  "KA-01-4455",
		Operator:     "R. Villanueva",
		Availability: models.VehicleAvailable,
		Location:     models.Location{Latitude: 12.9710, Longitude: 77.5910},
	}
	rig.registry.UpsertVehicle(v)
	return v
}

func (rig *testRig) addFacility(criticalFree, generalFree int) *models.Facility {
	f := &models.Facility{
		ID:            uuid.New(),
		Name:          "City General",
		Location:      models.Location{Latitude: 12.9720, Longitude: 77.5920},
		CriticalFree:  criticalFree,
		CriticalTotal: 2,
		GeneralFree:   generalFree,
		GeneralTotal:  5,
		Rating:        4.0,
	}
	rig.registry.UpsertFacility(f)
	return f
}

func intakeCase() *models.Case {
	return &models.Case{
		Reporter:    models.Reporter{ID: "reporter-1"},
		Location:    models.Location{Latitude: 12.9700, Longitude: 77.5900, Address: "MG Road"},
		Description: "two-car collision",
		Injuries:    "possible fracture",
	}
}

func TestReportAccident_FullAutoAssignment(t *testing.T) {
	rig := newTestRescueService(t)
	vehicle := rig.addVehicle()
	facility := rig.addFacility(2, 5)

	ctx := context.Background()
	err := rig.svc.ReportAccident(ctx, intakeCase())
	require.NoError(t, err)

	// Triage, dispatch and allocation all ran synchronously.
	require.NotNil(t, rig.stored)
	assert.Equal(t, models.CaseAllocated, rig.stored.Status)
	assert.Equal(t, models.SeverityModerate, rig.stored.Severity)
	require.Len(t, rig.stored.Verdicts, 1)
	assert.Equal(t, "keyword-classifier", rig.stored.Verdicts[0].Source)

	require.NotNil(t, rig.stored.VehicleID)
	assert.Equal(t, vehicle.ID, *rig.stored.VehicleID)
	require.NotNil(t, rig.stored.FacilityID)
	assert.Equal(t, facility.ID, *rig.stored.FacilityID)
	assert.Equal(t, models.SlotGeneral, rig.stored.FacilitySlot)

	vSnap, err := rig.registry.Vehicle(vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleEnRoute, vSnap.Availability)
	fSnap, err := rig.registry.Facility(facility.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, fSnap.GeneralFree)

	// Triaged, Dispatched, Allocated each emitted a notification round.
	require.Len(t, rig.snaps, 3)
	assert.Equal(t, models.CaseTriaged, rig.snaps[0].Case.Status)
	assert.Equal(t, models.CaseDispatched, rig.snaps[1].Case.Status)
	assert.Equal(t, models.CaseAllocated, rig.snaps[2].Case.Status)
}

func TestReportAccident_NoResourcesRecordsExhaustion(t *testing.T) {
	rig := newTestRescueService(t)
	// Empty registry and MatchMaxAttempts=1: the first failed attempt is
	// already the last.

	err := rig.svc.ReportAccident(context.Background(), intakeCase())
	require.NoError(t, err)

	require.NotNil(t, rig.stored)
	assert.Equal(t, models.CaseTriaged, rig.stored.Status)
	assert.Equal(t, "no resource available", rig.stored.StatusDetail)
}

func TestAssignmentRetriesUntilResourceAppears(t *testing.T) {
	rig := newTestRescueService(t)
	rig.svc.cfg.MatchMaxAttempts = 10

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rig.svc.StartWorkers(ctx)

	err := rig.svc.ReportAccident(context.Background(), intakeCase())
	require.NoError(t, err)

	// The first attempt found nothing and queued a backoff retry.
	assert.Equal(t, models.CaseTriaged, rig.storedCase().Status)

	rig.addVehicle()
	rig.addFacility(2, 5)

	require.Eventually(t, func() bool {
		return rig.storedCase().Status == models.CaseAllocated
	}, 3*time.Second, 10*time.Millisecond)
}

func TestAdvance_DispatchClearsExhaustionDetail(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseTriaged, models.SeverityModerate)
	rig.stored.StatusDetail = "no resource available"
	vehicle := rig.addVehicle()

	c, err := rig.svc.Advance(context.Background(), seeded.ID, SignalDispatch)
	require.NoError(t, err)
	assert.Equal(t, models.CaseDispatched, c.Status)
	assert.Empty(t, c.StatusDetail)
	require.NotNil(t, c.VehicleID)
	assert.Equal(t, vehicle.ID, *c.VehicleID)
}

func TestAdvance_DispatchIdempotent(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseDispatched, models.SeverityModerate)

	// The registry is empty; a second dispatch must short-circuit before any
	// matching happens.
	c, err := rig.svc.Advance(context.Background(), seeded.ID, SignalDispatch)
	require.NoError(t, err)
	assert.Equal(t, models.CaseDispatched, c.Status)
	assert.Empty(t, rig.snaps)
}

func TestAdvance_DispatchNoCandidate(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseTriaged, models.SeverityModerate)

	_, err := rig.svc.Advance(context.Background(), seeded.ID, SignalDispatch)
	assert.ErrorIs(t, err, matcher.ErrNoCandidate)
	assert.Equal(t, models.CaseTriaged, rig.stored.Status)
}

func TestAdvance_DispatchOnCancelledCase(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseTriaged, models.SeverityModerate)
	_, err := engine.Cancel(rig.stored, "caller hung up", time.Now().UTC())
	require.NoError(t, err)
	rig.addVehicle()

	_, err = rig.svc.Advance(context.Background(), seeded.ID, SignalDispatch)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
}

func TestAdvance_SkippingAllocateIsInvalid(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseTriaged, models.SeverityModerate)
	rig.addFacility(2, 5)

	_, err := rig.svc.Advance(context.Background(), seeded.ID, SignalAllocate)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
	assert.Equal(t, models.CaseTriaged, rig.stored.Status)
}

func TestAdvance_CriticalRequiresCriticalBed(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseDispatched, models.SeverityCritical)
	rig.addFacility(0, 5)

	_, err := rig.svc.Advance(context.Background(), seeded.ID, SignalAllocate)
	assert.ErrorIs(t, err, matcher.ErrNoCandidate)

	// The general pool was not touched.
	facilities := rig.registry.Facilities()
	require.Len(t, facilities, 1)
	assert.Equal(t, 5, facilities[0].GeneralFree)
}

func TestAdvance_EnRouteMarksVehicleBusy(t *testing.T) {
	rig := newTestRescueService(t)
	vehicle := rig.addVehicle()
	require.NoError(t, rig.registry.ReserveVehicle(vehicle.ID))

	seeded := rig.seedCase(models.CaseAllocated, models.SeverityModerate)
	rig.stored.VehicleID = &vehicle.ID

	c, err := rig.svc.Advance(context.Background(), seeded.ID, SignalEnRoute)
	require.NoError(t, err)
	assert.Equal(t, models.CaseInTransit, c.Status)

	snap, err := rig.registry.Vehicle(vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleBusy, snap.Availability)
}

func TestAdvance_ArrivedReleasesResources(t *testing.T) {
	rig := newTestRescueService(t)
	vehicle := rig.addVehicle()
	require.NoError(t, rig.registry.ReserveVehicle(vehicle.ID))
	require.NoError(t, rig.registry.MarkVehicleBusy(vehicle.ID))
	facility := rig.addFacility(1, 5) // one critical slot already held

	seeded := rig.seedCase(models.CaseInTransit, models.SeverityCritical)
	rig.stored.VehicleID = &vehicle.ID
	rig.stored.FacilityID = &facility.ID
	rig.stored.FacilitySlot = models.SlotCritical

	c, err := rig.svc.Advance(context.Background(), seeded.ID, SignalArrived)
	require.NoError(t, err)
	assert.Equal(t, models.CaseCompleted, c.Status)
	assert.Nil(t, c.VehicleID)
	assert.Nil(t, c.FacilityID)

	vSnap, err := rig.registry.Vehicle(vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleAvailable, vSnap.Availability)
	fSnap, err := rig.registry.Facility(facility.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fSnap.CriticalFree)

	// The completion notification sees the facility that served the case,
	// not the post-release state.
	require.Len(t, rig.snaps, 1)
	assert.NotNil(t, rig.snaps[0].Facility)
	assert.Equal(t, facility.ID, rig.snaps[0].Facility.ID)
}

func TestAdvance_ArrivedIdempotent(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseCompleted, models.SeverityModerate)

	c, err := rig.svc.Advance(context.Background(), seeded.ID, SignalArrived)
	require.NoError(t, err)
	assert.Equal(t, models.CaseCompleted, c.Status)
	assert.Empty(t, rig.snaps)
}

func TestCancel_ReleasesResources(t *testing.T) {
	rig := newTestRescueService(t)
	vehicle := rig.addVehicle()
	require.NoError(t, rig.registry.ReserveVehicle(vehicle.ID))
	facility := rig.addFacility(2, 4) // one general slot already held

	seeded := rig.seedCase(models.CaseAllocated, models.SeverityModerate)
	rig.stored.VehicleID = &vehicle.ID
	rig.stored.FacilityID = &facility.ID
	rig.stored.FacilitySlot = models.SlotGeneral

	c, err := rig.svc.Cancel(context.Background(), seeded.ID, "patient recovered on scene")
	require.NoError(t, err)
	assert.Equal(t, models.CaseCancelled, c.Status)
	assert.Equal(t, "patient recovered on scene", c.StatusDetail)
	assert.Nil(t, c.VehicleID)

	vSnap, err := rig.registry.Vehicle(vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleAvailable, vSnap.Availability)
	fSnap, err := rig.registry.Facility(facility.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fSnap.GeneralFree)

	require.Len(t, rig.snaps, 1)
	assert.Equal(t, models.CaseCancelled, rig.snaps[0].Case.Status)
}

func TestCancel_Idempotent(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseTriaged, models.SeverityModerate)

	_, err := rig.svc.Cancel(context.Background(), seeded.ID, "first reason")
	require.NoError(t, err)

	c, err := rig.svc.Cancel(context.Background(), seeded.ID, "second reason")
	require.NoError(t, err)
	assert.Equal(t, "first reason", c.StatusDetail)
	assert.Len(t, rig.snaps, 1)
}

func TestCancel_CompletedCaseIsInvalid(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseCompleted, models.SeverityModerate)

	_, err := rig.svc.Cancel(context.Background(), seeded.ID, "too late")
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
}

func TestCancel_DuringClassificationDropsVerdict(t *testing.T) {
	rig := newTestRescueService(t)

	// The classifier simulates a cancellation landing while the (slow)
	// classification call is in flight: the case is already terminal when the
	// verdict comes back.
	rig.svc.classifier = classifierFunc(func(ctx context.Context, report triage.Report) (models.Severity, error) {
		_, err := engine.Cancel(rig.stored, "caller cancelled", time.Now().UTC())
		require.NoError(t, err)
		return models.SeverityLow, nil
	})

	err := rig.svc.ReportAccident(context.Background(), intakeCase())
	require.NoError(t, err)

	assert.Equal(t, models.CaseCancelled, rig.stored.Status)
	assert.Empty(t, rig.stored.Verdicts)
	assert.Empty(t, rig.stored.Severity)
	assert.Empty(t, rig.snaps)
}

func TestRetriage_AppendsVerdict(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseDispatched, models.SeverityModerate)
	rig.stored.Verdicts = []models.TriageVerdict{{
		ID:       uuid.New(),
		Severity: models.SeverityModerate,
		Source:   "keyword-classifier",
	}}
	rig.stored.Description = "driver is unconscious"

	_, err := rig.svc.Retriage(context.Background(), seeded.ID)
	require.NoError(t, err)

	require.Len(t, rig.stored.Verdicts, 2)
	assert.Equal(t, models.SeverityCritical, rig.stored.Severity)
	// Already past Triaged: the status does not move and no transition
	// notification is emitted.
	assert.Equal(t, models.CaseDispatched, rig.stored.Status)
	assert.Empty(t, rig.snaps)
}

func TestRetriage_TerminalCase(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseCompleted, models.SeverityModerate)

	_, err := rig.svc.Retriage(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, engine.ErrInvalidTransition)
}

func TestGetCase_CacheHit(t *testing.T) {
	rig := newTestRescueService(t)
	id := uuid.New()
	cached := &models.Case{ID: id, Status: models.CaseTriaged}

	rig.repo.EXPECT().GetCaseFromCache(gomock.Any(), id).Return(cached, nil).Times(1)

	c, err := rig.svc.GetCase(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, cached, c)
}

func TestGetCase_CacheMissFallsThrough(t *testing.T) {
	rig := newTestRescueService(t)
	seeded := rig.seedCase(models.CaseTriaged, models.SeverityLow)

	rig.repo.EXPECT().GetCaseFromCache(gomock.Any(), seeded.ID).Return(nil, nil).Times(1)
	rig.repo.EXPECT().SetCaseCache(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	c, err := rig.svc.GetCase(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, c.ID)
}

func TestAcknowledgeDelivery(t *testing.T) {
	rig := newTestRescueService(t)
	id := uuid.New()

	err := rig.svc.AcknowledgeDelivery(context.Background(), id, models.DeliveryQueued)
	assert.Error(t, err)

	rig.notifications.EXPECT().
		UpdateNotificationStatus(gomock.Any(), id, models.DeliveryDelivered).
		Return(nil).Times(1)
	err = rig.svc.AcknowledgeDelivery(context.Background(), id, models.DeliveryDelivered)
	require.NoError(t, err)
}

func TestStats(t *testing.T) {
	rig := newTestRescueService(t)
	rig.addVehicle()
	rig.addFacility(2, 3)
	rig.repo.EXPECT().CountActiveCases(gomock.Any()).Return(4, nil).Times(1)

	stats, err := rig.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.ActiveCases)
	assert.Equal(t, 1, stats.AvailableVehicles)
	assert.Equal(t, 2, stats.FreeCriticalBeds)
	assert.Equal(t, 3, stats.FreeGeneralBeds)
}
