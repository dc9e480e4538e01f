package matcher

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/registry"
)

func newTestMatcher(reg *registry.Registry) *Matcher {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		SearchRadiusMeters: 15000,
		DistanceWeight:     0.4,
		CapacityWeight:     0.25,
		SpecialtyWeight:    0.2,
		RatingWeight:       0.15,
	}
	return New(reg, nil, cfg, logger)
}

func testCase(severity models.Severity) *models.Case {
	return &models.Case{
		ID:       uuid.New(),
		Severity: severity,
		Location: models.Location{Latitude: 12.9700, Longitude: 77.5900, Address: "MG Road"},
	}
}

func availableVehicle(lat, lon float64) *models.Vehicle {
	return &models.Vehicle{
		ID:           uuid.New(),
		PlateNumber:  "KA-01-0001",
		Availability: models.VehicleAvailable,
		Location:     models.Location{Latitude: lat, Longitude: lon},
	}
}

func ratedFacility(name string, lat, lon float64, criticalFree, generalFree int, rating float64) *models.Facility {
	return &models.Facility{
		ID:            uuid.New(),
		Name:          name,
		Location:      models.Location{Latitude: lat, Longitude: lon},
		CriticalFree:  criticalFree,
		CriticalTotal: 5,
		GeneralFree:   generalFree,
		GeneralTotal:  10,
		Rating:        rating,
	}
}

func TestMatchVehicle_PicksClosest(t *testing.T) {
	reg := registry.New()
	closest := availableVehicle(12.9710, 77.5910)
	farther := availableVehicle(12.9900, 77.6100)
	reg.UpsertVehicle(farther)
	reg.UpsertVehicle(closest)

	m := newTestMatcher(reg)
	v, err := m.MatchVehicle(context.Background(), testCase(models.SeverityModerate))
	require.NoError(t, err)
	assert.Equal(t, closest.ID, v.ID)
	assert.Equal(t, models.VehicleEnRoute, v.Availability)

	// The reservation stuck in the registry.
	snap, err := reg.Vehicle(closest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleEnRoute, snap.Availability)
}

func TestMatchVehicle_NoCandidate(t *testing.T) {
	reg := registry.New()
	m := newTestMatcher(reg)

	_, err := m.MatchVehicle(context.Background(), testCase(models.SeverityCritical))
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestMatchVehicle_OutsideRadiusIsNoCandidate(t *testing.T) {
	reg := registry.New()
	reg.UpsertVehicle(availableVehicle(14.0000, 79.0000))

	m := newTestMatcher(reg)
	_, err := m.MatchVehicle(context.Background(), testCase(models.SeverityLow))
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestMatchVehicle_LostRaceAdvancesToNext(t *testing.T) {
	reg := registry.New()
	closest := availableVehicle(12.9710, 77.5910)
	second := availableVehicle(12.9800, 77.6000)
	reg.UpsertVehicle(closest)
	reg.UpsertVehicle(second)

	m := newTestMatcher(reg)

	// Another case grabs the closest vehicle after the candidate list was
	// built but before the reservation.
	require.NoError(t, reg.ReserveVehicle(closest.ID))

	v, err := m.MatchVehicle(context.Background(), testCase(models.SeverityModerate))
	require.NoError(t, err)
	assert.Equal(t, second.ID, v.ID)
}

func TestMatchFacility_CriticalNeverFallsBackToGeneral(t *testing.T) {
	reg := registry.New()
	// Plenty of general beds, zero critical-care beds.
	reg.UpsertFacility(ratedFacility("City General", 12.9720, 77.5920, 0, 8, 4.5))

	m := newTestMatcher(reg)
	_, _, err := m.MatchFacility(context.Background(), testCase(models.SeverityCritical))
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestMatchFacility_CriticalTakesCriticalSlot(t *testing.T) {
	reg := registry.New()
	f := ratedFacility("City General", 12.9720, 77.5920, 2, 8, 4.5)
	reg.UpsertFacility(f)

	m := newTestMatcher(reg)
	got, slot, err := m.MatchFacility(context.Background(), testCase(models.SeverityCritical))
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, models.SlotCritical, slot)

	snap, err := reg.Facility(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CriticalFree)
	assert.Equal(t, 8, snap.GeneralFree)
}

func TestMatchFacility_ModeratePrefersGeneral(t *testing.T) {
	reg := registry.New()
	f := ratedFacility("City General", 12.9720, 77.5920, 2, 8, 4.5)
	reg.UpsertFacility(f)

	m := newTestMatcher(reg)
	_, slot, err := m.MatchFacility(context.Background(), testCase(models.SeverityModerate))
	require.NoError(t, err)
	assert.Equal(t, models.SlotGeneral, slot)
}

func TestMatchFacility_ModerateFallsBackToCritical(t *testing.T) {
	reg := registry.New()
	f := ratedFacility("City General", 12.9720, 77.5920, 2, 0, 4.5)
	reg.UpsertFacility(f)

	m := newTestMatcher(reg)
	got, slot, err := m.MatchFacility(context.Background(), testCase(models.SeverityLow))
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, models.SlotCritical, slot)
}

func TestMatchFacility_RankingFavorsCloserFacility(t *testing.T) {
	reg := registry.New()
	near := ratedFacility("Near Hospital", 12.9720, 77.5920, 2, 5, 3.0)
	far := ratedFacility("Far Hospital", 13.0900, 77.7100, 2, 5, 3.0)
	reg.UpsertFacility(far)
	reg.UpsertFacility(near)

	m := newTestMatcher(reg)
	got, _, err := m.MatchFacility(context.Background(), testCase(models.SeverityModerate))
	require.NoError(t, err)
	assert.Equal(t, near.ID, got.ID)
}

func TestMatchFacility_SpecialtyBreaksNearTie(t *testing.T) {
	reg := registry.New()
	plain := ratedFacility("Plain Hospital", 12.9720, 77.5920, 2, 5, 3.0)
	trauma := ratedFacility("Trauma Hospital", 12.9720, 77.5920, 2, 5, 3.0)
	trauma.Specialties = []string{"trauma"}
	reg.UpsertFacility(plain)
	reg.UpsertFacility(trauma)

	c := testCase(models.SeverityModerate)
	c.Injuries = "suspected trauma to the chest"

	m := newTestMatcher(reg)
	got, _, err := m.MatchFacility(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, trauma.ID, got.ID)
}

func TestMatchFacility_NoBedsAnywhere(t *testing.T) {
	reg := registry.New()
	reg.UpsertFacility(ratedFacility("Full Hospital", 12.9720, 77.5920, 0, 0, 5.0))

	m := newTestMatcher(reg)
	_, _, err := m.MatchFacility(context.Background(), testCase(models.SeverityLow))
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestSpecialtyMatch(t *testing.T) {
	assert.Equal(t, 0.0, specialtyMatch("", []string{"trauma"}))
	assert.Equal(t, 0.0, specialtyMatch("broken arm", nil))
	assert.Equal(t, 1.0, specialtyMatch("severe trauma", []string{"trauma"}))
	assert.Equal(t, 0.5, specialtyMatch("cardiac distress", []string{"cardiac care", "burns"}))
}
