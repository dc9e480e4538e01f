package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/service"
)

// ResourceRepository persists the fleet and facility state the in-memory
// registry is warmed from. Rows are registered out-of-band by fleet
// management; the engine only updates their state fields.
type ResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) service.ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	query := `
		SELECT
			id, plate_number, operator, operator_phone, equipment,
			availability, latitude, longitude, address, updated_at
		FROM vehicles
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*models.Vehicle, 0)
	for rows.Next() {
		v := &models.Vehicle{}
		err := rows.Scan(
			&v.ID,
			&v.PlateNumber,
			&v.Operator,
			&v.OperatorPhone,
			&v.Equipment,
			&v.Availability,
			&v.Location.Latitude,
			&v.Location.Longitude,
			&v.Location.Address,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error vehicle list iteration: %w", err)
	}
	return vehicles, nil
}

func (r *ResourceRepository) ListFacilities(ctx context.Context) ([]*models.Facility, error) {
	query := `
		SELECT
			id, name, latitude, longitude, address, specialties,
			critical_free, critical_total, general_free, general_total,
			rating, contact, updated_at
		FROM facilities
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	facilities := make([]*models.Facility, 0)
	for rows.Next() {
		f := &models.Facility{}
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Location.Latitude,
			&f.Location.Longitude,
			&f.Location.Address,
			&f.Specialties,
			&f.CriticalFree,
			&f.CriticalTotal,
			&f.GeneralFree,
			&f.GeneralTotal,
			&f.Rating,
			&f.Contact,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan facility row: %w", err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error facility list iteration: %w", err)
	}
	return facilities, nil
}

// SaveVehicleState writes back the mutable state after a reservation or
// release.
func (r *ResourceRepository) SaveVehicleState(ctx context.Context, v *models.Vehicle) error {
	query := `
		UPDATE vehicles SET
			availability = $1,
			latitude = $2,
			longitude = $3,
			address = $4,
			updated_at = $5
		WHERE id = $6;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		v.Availability,
		v.Location.Latitude,
		v.Location.Longitude,
		v.Location.Address,
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save vehicle state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("vehicle with id %s not found for update", v.ID)
	}
	return nil
}

// SaveFacilityState writes back the capacity counters after a reservation or
// release.
func (r *ResourceRepository) SaveFacilityState(ctx context.Context, f *models.Facility) error {
	query := `
		UPDATE facilities SET
			critical_free = $1,
			general_free = $2,
			updated_at = $3
		WHERE id = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		f.CriticalFree,
		f.GeneralFree,
		f.UpdatedAt,
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save facility state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("facility with id %s not found for update", f.ID)
	}
	return nil
}
