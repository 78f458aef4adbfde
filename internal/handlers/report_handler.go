package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finanmind/internal/services"
)

// ReportHandler serves the dashboard and the reports page.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard returns the dashboard for a period
// @Summary     Dashboard
// @Description Period totals, recent transactions, expense categories and a six-month history
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "current_month, last_month, last_3_months, last30 or current_year"
// @Success     200 {object} services.DashboardView "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Internal server error"
// @Router      /dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.reportService.GetDashboard(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetReport returns the reports page for a period
// @Summary     Reports
// @Description Period totals, monthly income and expense history and expense distribution
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "current_month, last_month, last_3_months, last30 or current_year"
// @Success     200 {object} services.ReportsView "Reports"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Internal server error"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.reportService.GetReport(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
