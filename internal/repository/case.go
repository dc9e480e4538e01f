package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/service"
)

const caseCacheTTL = 5 * time.Minute

type CaseRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewCaseRepository(db *pgxpool.Pool, redisClient *redis.Client) service.CaseRepository {
	return &CaseRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// CreateCase inserts a new case row.
func (r *CaseRepository) CreateCase(ctx context.Context, c *models.Case) error {
	reporter, verdicts, timeline, err := marshalCaseDocs(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cases (
			id, reporter, latitude, longitude, address, reported_at,
			severity, verdicts, description, injuries, media_refs,
			status, status_detail, timeline, vehicle_id, facility_id,
			facility_slot, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = r.db.Exec(ctx, query,
		c.ID,
		reporter,
		c.Location.Latitude,
		c.Location.Longitude,
		c.Location.Address,
		c.ReportedAt,
		nullableString(string(c.Severity)),
		verdicts,
		c.Description,
		c.Injuries,
		c.MediaRefs,
		c.Status,
		c.StatusDetail,
		timeline,
		c.VehicleID,
		c.FacilityID,
		nullableString(string(c.FacilitySlot)),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// GetCaseByID returns one case with its timeline and verdict history.
func (r *CaseRepository) GetCaseByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	query := `
		SELECT
			id, reporter, latitude, longitude, address, reported_at,
			severity, verdicts, description, injuries, media_refs,
			status, status_detail, timeline, vehicle_id, facility_id,
			facility_slot, created_at, updated_at
		FROM cases
		WHERE id = $1;
	`
	c, err := scanCase(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("case with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get case by id: %w", err)
	}
	return c, nil
}

// UpdateCase persists the full mutable state of a case.
func (r *CaseRepository) UpdateCase(ctx context.Context, c *models.Case) error {
	_, verdicts, timeline, err := marshalCaseDocs(c)
	if err != nil {
		return err
	}

	query := `
		UPDATE cases SET
			severity = $1,
			verdicts = $2,
			status = $3,
			status_detail = $4,
			timeline = $5,
			vehicle_id = $6,
			facility_id = $7,
			facility_slot = $8,
			updated_at = $9
		WHERE id = $10;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		nullableString(string(c.Severity)),
		verdicts,
		c.Status,
		c.StatusDetail,
		timeline,
		c.VehicleID,
		c.FacilityID,
		nullableString(string(c.FacilitySlot)),
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("case with id %s not found for update", c.ID)
	}
	return nil
}

// ListCases returns the case history, newest first, with pagination.
func (r *CaseRepository) ListCases(ctx context.Context, page, pageSize int) ([]*models.Case, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id, reporter, latitude, longitude, address, reported_at,
			severity, verdicts, description, injuries, media_refs,
			status, status_detail, timeline, vehicle_id, facility_id,
			facility_slot, created_at, updated_at
		FROM cases
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	cases := make([]*models.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case row: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return cases, nil
}

// CountActiveCases counts cases that have not reached a terminal state.
func (r *CaseRepository) CountActiveCases(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM cases
		WHERE status NOT IN ('Completed', 'Cancelled');
	`
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active cases: %w", err)
	}
	return count, nil
}

// GetCaseFromCache tries the Redis read cache; a miss returns (nil, nil).
func (r *CaseRepository) GetCaseFromCache(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	key := fmt.Sprintf("case:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get case from cache: %w", err)
	}

	c := &models.Case{}
	if err := json.Unmarshal(val, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal case from cache: %w", err)
	}
	return c, nil
}

// SetCaseCache stores a case snapshot in Redis.
func (r *CaseRepository) SetCaseCache(ctx context.Context, c *models.Case) error {
	key := fmt.Sprintf("case:%s", c.ID.String())
	val, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal case for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, caseCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set case in cache: %w", err)
	}
	return nil
}

// InvalidateCaseCache drops a case from the Redis cache.
func (r *CaseRepository) InvalidateCaseCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("case:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate case cache: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	c := &models.Case{}
	var (
		reporter     []byte
		verdicts     []byte
		timeline     []byte
		severity     *string
		facilitySlot *string
	)
	err := row.Scan(
		&c.ID,
		&reporter,
		&c.Location.Latitude,
		&c.Location.Longitude,
		&c.Location.Address,
		&c.ReportedAt,
		&severity,
		&verdicts,
		&c.Description,
		&c.Injuries,
		&c.MediaRefs,
		&c.Status,
		&c.StatusDetail,
		&timeline,
		&c.VehicleID,
		&c.FacilityID,
		&facilitySlot,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if severity != nil {
		c.Severity = models.Severity(*severity)
	}
	if facilitySlot != nil {
		c.FacilitySlot = models.SlotClass(*facilitySlot)
	}
	if err := json.Unmarshal(reporter, &c.Reporter); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reporter: %w", err)
	}
	if err := json.Unmarshal(verdicts, &c.Verdicts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdicts: %w", err)
	}
	if err := json.Unmarshal(timeline, &c.Timeline); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
	}
	return c, nil
}

func marshalCaseDocs(c *models.Case) (reporter, verdicts, timeline []byte, err error) {
	reporter, err = json.Marshal(c.Reporter)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal reporter: %w", err)
	}
	if c.Verdicts == nil {
		verdicts = []byte("[]")
	} else if verdicts, err = json.Marshal(c.Verdicts); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal verdicts: %w", err)
	}
	if timeline, err = json.Marshal(c.Timeline); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal timeline: %w", err)
	}
	return reporter, verdicts, timeline, nil
}

// nullableString maps "" to SQL NULL for enum-like text columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
