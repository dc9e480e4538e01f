package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	"github.com/garudaops/rescue_orchestration_system/internal/engine"
	"github.com/garudaops/rescue_orchestration_system/internal/matcher"
	"github.com/garudaops/rescue_orchestration_system/internal/models"
	"github.com/garudaops/rescue_orchestration_system/internal/service"
)

type Handler struct {
	rescueService service.RescueService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(rescueService service.RescueService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		rescueService: rescueService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Report an accident
// @Description Open a new rescue case from an accident report. Triage runs asynchronously. Requires API key.
// @Tags Cases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body ReportAccidentRequest true "Accident report"
// @Success 201 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases [post]
func (h *Handler) reportAccident(c *gin.Context) {
	var input ReportAccidentRequest
	log := h.logger.WithField("method", "reportAccident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := ReportToCaseModel(input)
	if err := h.rescueService.ReportAccident(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to report accident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToCaseResponse(model))
}

// @Summary List cases
// @Description Get the paginated case history, newest first. Requires API key.
// @Tags Cases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} CaseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases [get]
func (h *Handler) listCases(c *gin.Context) {
	log := h.logger.WithField("method", "listCases")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	cases, err := h.rescueService.ListCases(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list cases from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToCaseResponses(cases))
}

// @Summary Get case by ID
// @Description Get a single case snapshot with its timeline. Requires API key.
// @Tags Cases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Success 200 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid case ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Case not found"
// @Router /cases/{id} [get]
func (h *Handler) getCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "getCase").WithField("id", id)

	rescueCase, err := h.rescueService.GetCase(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get case from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToCaseResponse(rescueCase))
}

// @Summary Advance a case
// @Description Apply a transition signal (dispatch, allocate, enroute, arrived). Re-entrant signals are idempotent. Requires API key.
// @Tags Cases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Param signal body AdvanceCaseRequest true "Transition signal"
// @Success 200 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid case ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Invalid transition or no resource available"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases/{id}/advance [post]
func (h *Handler) advanceCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "advanceCase").WithField("id", id)

	var input AdvanceCaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signal, err := service.ParseSignal(input.Signal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown signal"})
		return
	}

	rescueCase, err := h.rescueService.Advance(c.Request.Context(), id, signal)
	if err != nil {
		switch {
		case errors.Is(err, matcher.ErrNoCandidate):
			log.Warn("No candidate resource for advance")
			c.JSON(http.StatusConflict, gin.H{"error": "no resource available"})
		case errors.Is(err, engine.ErrInvalidTransition):
			log.Warn("Invalid transition requested")
			c.JSON(http.StatusConflict, gin.H{"error": "invalid case transition"})
		default:
			log.WithError(err).Error("Failed to advance case in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, ModelToCaseResponse(rescueCase))
}

// @Summary Cancel a case
// @Description Cancel a non-terminal case and release its resources. Requires API key.
// @Tags Cases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Param cancellation body CancelCaseRequest true "Cancellation reason"
// @Success 200 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid case ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Case already completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases/{id}/cancel [post]
func (h *Handler) cancelCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "cancelCase").WithField("id", id)

	var input CancelCaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rescueCase, err := h.rescueService.Cancel(c.Request.Context(), id, input.Reason)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "case already completed"})
			return
		}
		log.WithError(err).Error("Failed to cancel case in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToCaseResponse(rescueCase))
}

// @Summary Re-run triage
// @Description Request a fresh severity classification; the new verdict is appended to the case history. Requires API key.
// @Tags Cases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Success 202 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid case ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Case already terminal"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases/{id}/triage [post]
func (h *Handler) retriageCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "retriageCase").WithField("id", id)

	rescueCase, err := h.rescueService.Retriage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "case already terminal"})
			return
		}
		log.WithError(err).Error("Failed to retriage case in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusAccepted, ModelToCaseResponse(rescueCase))
}

// @Summary List case notifications
// @Description Get the outbound notifications emitted for a case. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Success 200 {array} NotificationResponse
// @Failure 400 {object} map[string]string "Invalid case ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases/{id}/notifications [get]
func (h *Handler) listNotifications(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "listNotifications").WithField("id", id)

	notifications, err := h.rescueService.ListNotifications(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("Failed to list notifications from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	responses := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ModelToNotificationResponse(n)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Acknowledge notification delivery
// @Description Out-of-band callback from the delivery collaborator recording the final delivery status. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Notification ID"
// @Param ack body AckNotificationRequest true "Delivery acknowledgement"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid notification ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notifications/{id}/ack [post]
func (h *Handler) ackNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}
	log := h.logger.WithField("method", "ackNotification").WithField("id", id)

	var input AckNotificationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rescueService.AcknowledgeDelivery(c.Request.Context(), id, models.DeliveryStatus(input.Status)); err != nil {
		log.WithError(err).Error("Failed to acknowledge delivery in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List vehicles
// @Description Read-only fleet listing for dashboards. Requires API key.
// @Tags Resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} VehicleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /vehicles [get]
func (h *Handler) listVehicles(c *gin.Context) {
	vehicles := h.rescueService.Vehicles()
	responses := make([]*VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = ModelToVehicleResponse(v)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary List facilities
// @Description Read-only facility listing for dashboards. Requires API key.
// @Tags Resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} FacilityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /facilities [get]
func (h *Handler) listFacilities(c *gin.Context) {
	facilities := h.rescueService.Facilities()
	responses := make([]*FacilityResponse, len(facilities))
	for i, f := range facilities {
		responses[i] = ModelToFacilityResponse(f)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get operational statistics
// @Description Active case count plus current fleet and bed availability. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cases/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.rescueService.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		ActiveCases:       stats.ActiveCases,
		AvailableVehicles: stats.AvailableVehicles,
		FreeCriticalBeds:  stats.FreeCriticalBeds,
		FreeGeneralBeds:   stats.FreeGeneralBeds,
	})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
