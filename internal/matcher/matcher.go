package matcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/registry"
	"github.com/sirupsen/logrus"
)

// ErrNoCandidate signals transient resource exhaustion: no vehicle or
// facility could be reserved. The caller retries on a backoff policy; the
// case itself is never failed over it.
var ErrNoCandidate = errors.New("no candidate resource available")

// Weights tune the facility ranking score. They come from configuration so
// operators can adjust the policy without a rebuild.
type Weights struct {
	Distance  float64
	Capacity  float64
	Specialty float64
	Rating    float64
}

// Matcher selects and reserves one vehicle and one facility for a case.
type Matcher struct {
	registry     *registry.Registry
	router       Router // nil degrades to straight-line distance
	radiusMeters float64
	weights      Weights
	logger       *logrus.Logger
}

func New(reg *registry.Registry, router Router, cfg *config.Config, logger *logrus.Logger) *Matcher {
	return &Matcher{
		registry:     reg,
		router:       router,
		radiusMeters: cfg.SearchRadiusMeters,
		weights: Weights{
			Distance:  cfg.DistanceWeight,
			Capacity:  cfg.CapacityWeight,
			Specialty: cfg.SpecialtyWeight,
			Rating:    cfg.RatingWeight,
		},
		logger: logger,
	}
}

// MatchVehicle reserves the closest Available vehicle within the search
// radius. Candidates are tried in order; a lost reservation race advances to
// the next candidate, bounded by the candidate list length.
func (m *Matcher) MatchVehicle(ctx context.Context, c *models.Case) (*models.Vehicle, error) {
	log := m.logger.WithFields(logrus.Fields{
		"component": "matcher",
		"case_id":   c.ID,
	})

	candidates := m.registry.AvailableVehicles(c.Location, m.radiusMeters)
	if len(candidates) == 0 {
		return nil, ErrNoCandidate
	}

	// The registry orders by straight-line distance; a routing collaborator
	// refines the order with travel distance.
	if m.router != nil {
		m.sortByTravelDistance(ctx, c.Location, candidates)
	}

	for _, v := range candidates {
		err := m.registry.ReserveVehicle(v.ID)
		if err == nil {
			log.WithField("vehicle_id", v.ID).Info("Vehicle reserved")
			v.Availability = models.VehicleEnRoute
			return v, nil
		}
		if errors.Is(err, registry.ErrAlreadyReserved) {
			continue
		}
		return nil, fmt.Errorf("failed to reserve vehicle %s: %w", v.ID, err)
	}
	return nil, ErrNoCandidate
}

func (m *Matcher) sortByTravelDistance(ctx context.Context, from models.Location, vehicles []*models.Vehicle) {
	dist := make(map[string]float64, len(vehicles))
	for _, v := range vehicles {
		meters, _, err := m.router.DistanceAndETA(ctx, from, v.Location)
		if err != nil {
			// Routing failures degrade that candidate to straight line.
			meters = models.DistanceMeters(from, v.Location)
		}
		dist[v.ID.String()] = meters
	}
	sort.Slice(vehicles, func(i, j int) bool {
		di, dj := dist[vehicles[i].ID.String()], dist[vehicles[j].ID.String()]
		if di != dj {
			return di < dj
		}
		return vehicles[i].ID.String() < vehicles[j].ID.String()
	})
}

// MatchFacility reserves a bed slot at the best-ranked facility for the
// case's severity. Critical cases require a critical-care slot, with no
// fallback to general beds; Moderate and Low take a general slot, falling
// back to critical-care only when no general slot is free.
func (m *Matcher) MatchFacility(ctx context.Context, c *models.Case) (*models.Facility, models.SlotClass, error) {
	log := m.logger.WithFields(logrus.Fields{
		"component": "matcher",
		"case_id":   c.ID,
	})

	type candidate struct {
		facility *models.Facility
		class    models.SlotClass
		score    float64
	}

	all := m.registry.Facilities()
	candidates := make([]candidate, 0, len(all))
	maxDist := 0.0
	for _, f := range all {
		class, ok := slotClassFor(c.Severity, f)
		if !ok {
			continue
		}
		if d := models.DistanceMeters(c.Location, f.Location); d > maxDist {
			maxDist = d
		}
		candidates = append(candidates, candidate{facility: f, class: class})
	}
	if len(candidates) == 0 {
		return nil, "", ErrNoCandidate
	}

	for i := range candidates {
		candidates[i].score = m.score(c, candidates[i].facility, candidates[i].class, maxDist)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].facility.ID.String() < candidates[j].facility.ID.String()
	})

	for _, cand := range candidates {
		err := m.registry.ReserveFacilitySlot(cand.facility.ID, cand.class)
		if errors.Is(err, registry.ErrAlreadyReserved) && cand.class == models.SlotGeneral && c.Severity != models.SeverityCritical {
			// The last general slot was lost to a race; critical-care is
			// still an acceptable fallback for non-critical cases.
			cand.class = models.SlotCritical
			err = m.registry.ReserveFacilitySlot(cand.facility.ID, cand.class)
		}
		if err == nil {
			log.WithFields(logrus.Fields{
				"facility_id": cand.facility.ID,
				"slot_class":  cand.class,
			}).Info("Facility slot reserved")
			return cand.facility, cand.class, nil
		}
		if errors.Is(err, registry.ErrAlreadyReserved) {
			continue
		}
		return nil, "", fmt.Errorf("failed to reserve facility slot at %s: %w", cand.facility.ID, err)
	}
	return nil, "", ErrNoCandidate
}

// slotClassFor returns the slot class this facility would serve the severity
// with, and whether the facility is eligible at all.
func slotClassFor(severity models.Severity, f *models.Facility) (models.SlotClass, bool) {
	if severity == models.SeverityCritical {
		if f.CriticalFree > 0 {
			return models.SlotCritical, true
		}
		return "", false
	}
	if f.GeneralFree > 0 {
		return models.SlotGeneral, true
	}
	if f.CriticalFree > 0 {
		return models.SlotCritical, true
	}
	return "", false
}

// score ranks a facility: closer, emptier, better-matched and better-rated
// facilities win.
func (m *Matcher) score(c *models.Case, f *models.Facility, class models.SlotClass, maxDist float64) float64 {
	normDist := 0.0
	if maxDist > 0 {
		normDist = models.DistanceMeters(c.Location, f.Location) / maxDist
	}

	freeRatio := 0.0
	switch class {
	case models.SlotCritical:
		if f.CriticalTotal > 0 {
			freeRatio = float64(f.CriticalFree) / float64(f.CriticalTotal)
		}
	case models.SlotGeneral:
		if f.GeneralTotal > 0 {
			freeRatio = float64(f.GeneralFree) / float64(f.GeneralTotal)
		}
	}

	return m.weights.Distance*(1-normDist) +
		m.weights.Capacity*freeRatio +
		m.weights.Specialty*specialtyMatch(c.Injuries, f.Specialties) +
		m.weights.Rating*(f.Rating/5.0)
}

// specialtyMatch returns the fraction of facility specialties mentioned in
// the injury notes.
func specialtyMatch(injuries string, specialties []string) float64 {
	if len(specialties) == 0 || strings.TrimSpace(injuries) == "" {
		return 0
	}
	text := strings.ToLower(injuries)
	matched := 0
	for _, s := range specialties {
		for _, word := range strings.Fields(strings.ToLower(s)) {
			if strings.Contains(text, word) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(specialties))
}
