package registry

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

func newVehicle(lat, lon float64) *models.Vehicle {
	return &models.Vehicle{
		ID:           uuid.New(),
		PlateNumber:  "KA-01-1234",
		Operator:     "R. Villanueva",
		Availability: models.VehicleAvailable,
		Location:     models.Location{Latitude: lat, Longitude: lon},
	}
}

func newFacility(criticalFree, criticalTotal, generalFree, generalTotal int) *models.Facility {
	return &models.Facility{
		ID:            uuid.New(),
		Name:          "City General",
		CriticalFree:  criticalFree,
		CriticalTotal: criticalTotal,
		GeneralFree:   generalFree,
		GeneralTotal:  generalTotal,
	}
}

func TestRegistry_SnapshotsAreIsolated(t *testing.T) {
	r := New()
	v := newVehicle(12.97, 77.59)
	r.UpsertVehicle(v)

	snap, err := r.Vehicle(v.ID)
	require.NoError(t, err)
	snap.Availability = models.VehicleOutOfService

	again, err := r.Vehicle(v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleAvailable, again.Availability)
}

func TestRegistry_VehicleNotFound(t *testing.T) {
	r := New()
	_, err := r.Vehicle(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailableVehicles_RadiusAndOrder(t *testing.T) {
	r := New()
	near := models.Location{Latitude: 12.9700, Longitude: 77.5900}

	closest := newVehicle(12.9710, 77.5910)
	farther := newVehicle(12.9900, 77.6100)
	outside := newVehicle(13.5000, 78.0000)
	reserved := newVehicle(12.9701, 77.5901)
	reserved.Availability = models.VehicleEnRoute

	for _, v := range []*models.Vehicle{farther, outside, closest, reserved} {
		r.UpsertVehicle(v)
	}

	got := r.AvailableVehicles(near, 10000)
	require.Len(t, got, 2)
	assert.Equal(t, closest.ID, got[0].ID)
	assert.Equal(t, farther.ID, got[1].ID)
}

func TestReserveVehicle_ExactlyOneWinner(t *testing.T) {
	r := New()
	v := newVehicle(12.97, 77.59)
	r.UpsertVehicle(v)

	const contenders = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.ReserveVehicle(v.ID); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)

	snap, err := r.Vehicle(v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleEnRoute, snap.Availability)
}

func TestVehicleLifecycle(t *testing.T) {
	r := New()
	v := newVehicle(12.97, 77.59)
	r.UpsertVehicle(v)

	require.NoError(t, r.ReserveVehicle(v.ID))
	assert.ErrorIs(t, r.ReserveVehicle(v.ID), ErrAlreadyReserved)

	require.NoError(t, r.MarkVehicleBusy(v.ID))
	assert.ErrorIs(t, r.MarkVehicleBusy(v.ID), ErrNotReserved)

	require.NoError(t, r.ReleaseVehicle(v.ID))
	assert.ErrorIs(t, r.ReleaseVehicle(v.ID), ErrNotReserved)

	snap, err := r.Vehicle(v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleAvailable, snap.Availability)
}

func TestReserveFacilitySlot_LastSlotExactlyOneWinner(t *testing.T) {
	r := New()
	f := newFacility(1, 1, 0, 0)
	r.UpsertFacility(f)

	const contenders = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.ReserveFacilitySlot(f.ID, models.SlotCritical); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)

	snap, err := r.Facility(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CriticalFree)
}

func TestFacilitySlot_CapacityConservation(t *testing.T) {
	r := New()
	f := newFacility(2, 2, 3, 3)
	r.UpsertFacility(f)

	// Reserve and release concurrently; counters must end where they started
	// and never exceed the totals.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.ReserveFacilitySlot(f.ID, models.SlotGeneral); err == nil {
				assert.NoError(t, r.ReleaseFacilitySlot(f.ID, models.SlotGeneral))
			}
		}()
	}
	wg.Wait()

	snap, err := r.Facility(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.GeneralFree)
	assert.Equal(t, 2, snap.CriticalFree)
}

func TestReleaseFacilitySlot_CappedAtTotal(t *testing.T) {
	r := New()
	f := newFacility(2, 2, 1, 1)
	r.UpsertFacility(f)

	assert.ErrorIs(t, r.ReleaseFacilitySlot(f.ID, models.SlotCritical), ErrNotReserved)
	assert.ErrorIs(t, r.ReleaseFacilitySlot(f.ID, models.SlotGeneral), ErrNotReserved)

	snap, err := r.Facility(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CriticalFree)
	assert.Equal(t, 1, snap.GeneralFree)
}

func TestReserveFacilitySlot_EmptyPoolLosesRace(t *testing.T) {
	r := New()
	f := newFacility(0, 2, 0, 1)
	r.UpsertFacility(f)

	assert.ErrorIs(t, r.ReserveFacilitySlot(f.ID, models.SlotCritical), ErrAlreadyReserved)
	assert.ErrorIs(t, r.ReserveFacilitySlot(f.ID, models.SlotGeneral), ErrAlreadyReserved)
}
