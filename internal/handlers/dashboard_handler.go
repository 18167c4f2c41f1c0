package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "continuum/internal/errors"
	"continuum/internal/report"
	"continuum/internal/services"
)

// DashboardHandler serves the dashboard summary.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	currency         string
}

// NewDashboardHandler creates a new DashboardHandler. currency is the ISO
// code used by the markdown view.
func NewDashboardHandler(dashboardService services.DashboardServicer, currency string) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, currency: currency}
}

// GetDashboard handles fetching the dashboard figures.
// @Summary     Get the dashboard
// @Description Monthly recurring total, asset value, counts, upcoming renewals and expiring warranties
// @Tags        dashboard
// @Produce     json,text/markdown
// @Param       format query string false "json (default) or markdown"
// @Success     200 {object} services.DashboardSummary "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "markdown" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid format"))
		return
	}

	summary, err := h.dashboardService.GetSummary(now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if format == "markdown" {
		var b strings.Builder
		report.Dashboard(&b, summary, h.currency)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(b.String()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": summary})
}
