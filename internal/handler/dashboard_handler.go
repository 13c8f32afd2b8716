package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type summaryService interface {
	Summary(ctx context.Context) (*dto.Summary, error)
}

type healthService interface {
	Check(ctx context.Context) (*dto.Health, error)
}

// DashboardHandler serves the combined overview and the health probe.
type DashboardHandler struct {
	summary summaryService
	health  healthService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(summary summaryService, health healthService) *DashboardHandler {
	return &DashboardHandler{summary: summary, health: health}
}

// Summary godoc
// @Summary Combined teacher and student counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	res, err := h.summary.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Dashboard summary fetched successfully")
}

// Health godoc
// @Summary Server and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/health [get]
func (h *DashboardHandler) Health(c *gin.Context) {
	report, err := h.health.Check(c.Request.Context())
	if err != nil {
		response.ErrorWithData(c, err, report)
		return
	}
	response.OK(c, report, "Server is running")
}
