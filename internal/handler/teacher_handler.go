package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-dashboard-api/internal/dto"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type teacherService interface {
	CountActive(ctx context.Context) (*dto.TeachersActive, error)
	Stats(ctx context.Context) (*dto.TeacherStats, error)
	ListActive(ctx context.Context, req models.PageRequest) (*dto.TeacherList, error)
	Search(ctx context.Context, query, status string) (*dto.TeacherSearchResult, error)
	ByMonth(ctx context.Context, year string) (*dto.TeachersByMonth, error)
	Detail(ctx context.Context, id string) (*dto.TeacherDetail, error)
}

// TeacherHandler serves the teacher dashboard endpoints.
type TeacherHandler struct {
	service teacherService
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(svc teacherService) *TeacherHandler {
	return &TeacherHandler{service: svc}
}

// Active godoc
// @Summary Count active teachers
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/dashboard/teachers-active [get]
func (h *TeacherHandler) Active(c *gin.Context) {
	res, err := h.service.CountActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Active teachers fetched successfully")
}

// Stats godoc
// @Summary Teacher counts by status
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/dashboard/teachers-stats [get]
func (h *TeacherHandler) Stats(c *gin.Context) {
	res, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Teacher statistics fetched successfully")
}

// ActiveList godoc
// @Summary Paginated active teachers
// @Tags Teachers
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/dashboard/teachers-active-list [get]
func (h *TeacherHandler) ActiveList(c *gin.Context) {
	req, err := service.ParsePageRequest(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.ListActive(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Active teacher list fetched successfully")
}

// Search godoc
// @Summary Search teachers by name or email
// @Tags Teachers
// @Produce json
// @Param q query string true "Query, at least 2 characters"
// @Param status query string false "Status (default active)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/dashboard/teachers-search [get]
func (h *TeacherHandler) Search(c *gin.Context) {
	res, err := h.service.Search(c.Request.Context(), c.Query("q"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, fmt.Sprintf("Found %d teachers", res.TotalFound))
}

// ByMonth godoc
// @Summary New active teachers per month
// @Tags Teachers
// @Produce json
// @Param year query int false "Year (default current year)"
// @Success 200 {object} response.Envelope
// @Router /api/dashboard/teachers-by-month [get]
func (h *TeacherHandler) ByMonth(c *gin.Context) {
	res, err := h.service.ByMonth(c.Request.Context(), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Teachers per month fetched successfully")
}

// Detail godoc
// @Summary Teacher detail
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/dashboard/teacher-detail/{id} [get]
func (h *TeacherHandler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res, "Teacher detail fetched successfully")
}
