package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/service"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) service.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) SaveNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, case_id, recipient, title, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		n.ID,
		n.CaseID,
		n.Recipient,
		n.Title,
		n.Message,
		n.Status,
		n.CreatedAt,
		n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.DeliveryStatus) error {
	query := `
		UPDATE notifications SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("notification with id %s not found for update", id)
	}
	return nil
}

func (r *NotificationRepository) ListNotificationsByCase(ctx context.Context, caseID uuid.UUID) ([]*models.Notification, error) {
	query := `
		SELECT id, case_id, recipient, title, message, status, created_at, updated_at
		FROM notifications
		WHERE case_id = $1
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n := &models.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.CaseID,
			&n.Recipient,
			&n.Title,
			&n.Message,
			&n.Status,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error notification list iteration: %w", err)
	}
	return notifications, nil
}
