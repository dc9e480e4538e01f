package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	cases := api.Group("/cases")
	{
		cases.POST("", h.reportAccident)
		cases.GET("", h.listCases)
		cases.GET("/stats", h.getStats)
		cases.GET("/:id", h.getCase)
		cases.POST("/:id/advance", h.advanceCase)
		cases.POST("/:id/cancel", h.cancelCase)
		cases.POST("/:id/triage", h.retriageCase)
		cases.GET("/:id/notifications", h.listNotifications)
	}

	// Delivery acknowledgement callback from the delivery collaborator.
	api.POST("/notifications/:id/ack", h.ackNotification)

	// Read-only dashboard listings.
	api.GET("/vehicles", h.listVehicles)
	api.GET("/facilities", h.listFacilities)

	// Health-check route.
	api.GET("/system/health", h.healthCheck)
}
