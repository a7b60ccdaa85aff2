package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svuportal/portal-backend/internal/response"
	"github.com/svuportal/portal-backend/internal/service"
)

// DashboardHandler handles the role-branched dashboard endpoint.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/dashboard
// Resolves the session and returns the composed view for its role, or
// the unauthenticated state when no session is persisted.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	view, err := h.dashboardService.Resolve(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, view)
}
