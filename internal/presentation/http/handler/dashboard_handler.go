package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tanwartailor/tailor-api/internal/application/service"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles admin dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles the admin dashboard summary
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetAdminStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Admin stats retrieved successfully", stats)
}
