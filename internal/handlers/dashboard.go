package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/services"
)

type DashboardHandler struct {
	log              *logger.Logger
	dashboardService services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:              log.With("handler", "DashboardHandler"),
		dashboardService: dashboardService,
	}
}

func (dh *DashboardHandler) Overview(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, dh.log, err, "Failed to load dashboard")
		return
	}
	stats, err := dh.dashboardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, dh.log, err, "Failed to load dashboard")
		return
	}
	RespondOK(c, stats)
}
