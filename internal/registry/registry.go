package registry

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrAlreadyReserved signals a lost reservation race. Callers treat it
	// as "try the next candidate", not as a failure.
	ErrAlreadyReserved = errors.New("resource already reserved")
	ErrNotReserved     = errors.New("resource not reserved")
	ErrNotFound        = errors.New("resource not found")
)

// Registry tracks the live availability state of vehicles and facilities.
// It is one of the two shared-mutation surfaces in the system; every
// reservation is a compare-and-set under the registry lock, so two cases
// racing for the same resource yield exactly one winner.
type Registry struct {
	mu         sync.RWMutex
	vehicles   map[uuid.UUID]*models.Vehicle
	facilities map[uuid.UUID]*models.Facility
}

func New() *Registry {
	return &Registry{
		vehicles:   make(map[uuid.UUID]*models.Vehicle),
		facilities: make(map[uuid.UUID]*models.Facility),
	}
}

// UpsertVehicle registers or refreshes a vehicle. Registration happens
// out-of-band (fleet management); the registry only tracks state.
func (r *Registry) UpsertVehicle(v *models.Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[v.ID] = v.Clone()
}

func (r *Registry) UpsertFacility(f *models.Facility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facilities[f.ID] = f.Clone()
}

// Vehicle returns a snapshot of one vehicle.
func (r *Registry) Vehicle(id uuid.UUID) (*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return v.Clone(), nil
}

// Facility returns a snapshot of one facility.
func (r *Registry) Facility(id uuid.UUID) (*models.Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.facilities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f.Clone(), nil
}

// Vehicles returns snapshots of all vehicles, ordered by ID.
func (r *Registry) Vehicles() []*models.Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// Facilities returns snapshots of all facilities, ordered by ID.
func (r *Registry) Facilities() []*models.Facility {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Facility, 0, len(r.facilities))
	for _, f := range r.facilities {
		out = append(out, f.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// AvailableVehicles returns snapshots of Available vehicles within the given
// radius, ordered by ascending distance with ID as the deterministic
// tie-break.
func (r *Registry) AvailableVehicles(near models.Location, radiusMeters float64) []*models.Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Vehicle, 0)
	for _, v := range r.vehicles {
		if v.Availability != models.VehicleAvailable {
			continue
		}
		if models.DistanceMeters(near, v.Location) > radiusMeters {
			continue
		}
		out = append(out, v.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		di := models.DistanceMeters(near, out[i].Location)
		dj := models.DistanceMeters(near, out[j].Location)
		if di != dj {
			return di < dj
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// ReserveVehicle atomically flips an Available vehicle to EnRoute.
func (r *Registry) ReserveVehicle(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return ErrNotFound
	}
	if v.Availability != models.VehicleAvailable {
		return ErrAlreadyReserved
	}
	v.Availability = models.VehicleEnRoute
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkVehicleBusy moves a reserved vehicle to Busy (patient on board).
func (r *Registry) MarkVehicleBusy(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return ErrNotFound
	}
	if v.Availability != models.VehicleEnRoute {
		return ErrNotReserved
	}
	v.Availability = models.VehicleBusy
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// ReleaseVehicle returns a reserved vehicle to Available.
func (r *Registry) ReleaseVehicle(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return ErrNotFound
	}
	if v.Availability != models.VehicleEnRoute && v.Availability != models.VehicleBusy {
		return ErrNotReserved
	}
	v.Availability = models.VehicleAvailable
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// ReserveFacilitySlot atomically decrements a free-slot counter. The counter
// never goes negative; a zero counter loses the race.
func (r *Registry) ReserveFacilitySlot(id uuid.UUID, class models.SlotClass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.facilities[id]
	if !ok {
		return ErrNotFound
	}
	switch class {
	case models.SlotCritical:
		if f.CriticalFree <= 0 {
			return ErrAlreadyReserved
		}
		f.CriticalFree--
	case models.SlotGeneral:
		if f.GeneralFree <= 0 {
			return ErrAlreadyReserved
		}
		f.GeneralFree--
	}
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// ReleaseFacilitySlot returns a slot to the free pool, capped at the total.
func (r *Registry) ReleaseFacilitySlot(id uuid.UUID, class models.SlotClass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.facilities[id]
	if !ok {
		return ErrNotFound
	}
	switch class {
	case models.SlotCritical:
		if f.CriticalFree >= f.CriticalTotal {
			return ErrNotReserved
		}
		f.CriticalFree++
	case models.SlotGeneral:
		if f.GeneralFree >= f.GeneralTotal {
			return ErrNotReserved
		}
		f.GeneralFree++
	}
	f.UpdatedAt = time.Now().UTC()
	return nil
}
