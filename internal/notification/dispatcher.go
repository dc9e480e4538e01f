package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/garudaops/rescue_orchestration_system/internal/models"
)

// Snapshot carries point-in-time copies of the entities involved in a
// transition. Bodies are built from these, never from live references, so a
// historical notification cannot show post-release resource state.
type Snapshot struct {
	Case     *models.Case
	Vehicle  *models.Vehicle
	Facility *models.Facility
}

// Store is the slice of the storage collaborator the dispatcher needs.
type Store interface {
	SaveNotification(ctx context.Context, n *models.Notification) error
}

// Dispatcher maps case transitions to outbound notifications. Each
// transition has a fixed recipient set; records are created Queued and
// handed to the delivery queue.
type Dispatcher struct {
	store     Store
	publisher Publisher
	logger    *logrus.Logger
}

func NewDispatcher(store Store, publisher Publisher, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// recipientsFor is the fixed transition-to-recipients table.
func recipientsFor(status models.CaseStatus) []models.Recipient {
	switch status {
	case models.CaseTriaged:
		return []models.Recipient{models.RecipientPolice}
	case models.CaseDispatched:
		return []models.Recipient{models.RecipientVehicleCrew, models.RecipientFamily}
	case models.CaseAllocated:
		return []models.Recipient{models.RecipientHospital, models.RecipientFamily}
	case models.CaseInTransit:
		return []models.Recipient{models.RecipientFamily}
	case models.CaseCompleted:
		return []models.Recipient{models.RecipientFamily}
	case models.CaseCancelled:
		return []models.Recipient{models.RecipientFamily}
	default:
		return nil
	}
}

// CaseTransitioned emits the notifications for the snapshot's current
// status. Failures are logged and reported but must not affect case state;
// the facade treats the returned error as advisory.
func (d *Dispatcher) CaseTransitioned(ctx context.Context, snap Snapshot) error {
	log := d.logger.WithFields(logrus.Fields{
		"component": "notification",
		"case_id":   snap.Case.ID,
		"status":    snap.Case.Status,
	})

	now := time.Now().UTC()
	var firstErr error
	for _, recipient := range recipientsFor(snap.Case.Status) {
		title, message := buildMessage(recipient, snap)
		n := &models.Notification{
			ID:        uuid.New(),
			CaseID:    snap.Case.ID,
			Recipient: recipient,
			Title:     title,
			Message:   message,
			Status:    models.DeliveryQueued,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := d.store.SaveNotification(ctx, n); err != nil {
			log.WithError(err).WithField("recipient", recipient).Error("Failed to save notification")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		event := DeliveryEvent{
			NotificationID: n.ID,
			CaseID:         n.CaseID,
			Recipient:      n.Recipient,
			Title:          n.Title,
			Message:        n.Message,
			Timestamp:      now,
		}
		if err := d.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).WithField("recipient", recipient).Error("Failed to enqueue notification")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.WithField("recipient", recipient).Info("Notification queued")
	}
	return firstErr
}

func buildMessage(recipient models.Recipient, snap Snapshot) (string, string) {
	c := snap.Case
	switch recipient {
	case models.RecipientPolice:
		return "Police Case Logged",
			fmt.Sprintf("Accident case %s reported at %s. Severity: %s. Location: %s",
				c.ID, c.ReportedAt.Format(time.Kitchen), c.Severity, c.Location.Address)

	case models.RecipientVehicleCrew:
		msg := fmt.Sprintf("Proceed to %s. Severity: %s.", c.Location.Address, c.Severity)
		if c.Injuries != "" {
			msg += " Injuries: " + c.Injuries
		}
		return "Dispatch Order", msg

	case models.RecipientHospital:
		slot := "General"
		if c.Severity == models.SeverityCritical {
			slot = "Critical-care"
		}
		name := "your facility"
		if snap.Facility != nil {
			name = snap.Facility.Name
		}
		return "Bed Reserved",
			fmt.Sprintf("%s bed reserved at %s for incoming case %s. Medical team on standby.", slot, name, c.ID)

	case models.RecipientFamily:
		return "Rescue Update", familyMessage(snap)
	}
	return "", ""
}

func familyMessage(snap Snapshot) string {
	c := snap.Case
	switch c.Status {
	case models.CaseDispatched:
		if snap.Vehicle != nil {
			return fmt.Sprintf("Ambulance %s (%s) has been dispatched to %s.",
				snap.Vehicle.PlateNumber, snap.Vehicle.Operator, c.Location.Address)
		}
		return fmt.Sprintf("An ambulance has been dispatched to %s.", c.Location.Address)
	case models.CaseAllocated:
		if snap.Facility != nil {
			return fmt.Sprintf("A bed has been prepared at %s.", snap.Facility.Name)
		}
		return "A hospital bed has been prepared."
	case models.CaseInTransit:
		if snap.Facility != nil {
			return fmt.Sprintf("Patient picked up, en route to %s.", snap.Facility.Name)
		}
		return "Patient picked up, en route to hospital."
	case models.CaseCompleted:
		if snap.Facility != nil {
			return fmt.Sprintf("Patient has safely reached %s.", snap.Facility.Name)
		}
		return "Patient has safely reached the hospital."
	case models.CaseCancelled:
		if c.StatusDetail != "" {
			return "Rescue case was cancelled: " + c.StatusDetail
		}
		return "Rescue case was cancelled."
	}
	return fmt.Sprintf("Case %s is now %s.", c.ID, c.Status)
}
