package handlers

import (
	"net/http"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/response"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/service"
)

// DashboardHandler handles HTTP requests for the portfolio summary.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary handles GET requests for the dashboard summary: portfolio totals,
// top positions at market value, recent operations and allocation by class.
// A market-data outage degrades positions to cost basis, it never fails the
// request.
//
// Endpoint: GET /api/dashboard/summary
// Response: 200 OK with DashboardSummary
// Error: 500 Internal Server Error if aggregation fails
func (h *DashboardHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
