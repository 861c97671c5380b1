package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/verahealth/coach-backend/internal/engine"
	"github.com/verahealth/coach-backend/internal/http/response"
	"github.com/verahealth/coach-backend/internal/services"
)

type ReportHandler struct {
	reports services.ReportService
}

func NewReportHandler(reports services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// POST /api/reports
func (h *ReportHandler) Generate(c *gin.Context) {
	var answers engine.AssessmentAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	report, err := h.reports.Generate(c.Request.Context(), answers)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"report": report})
}

// GET /api/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_report_id", fmt.Errorf("report id must be a uuid"))
		return
	}
	report, err := h.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": report})
}

// GET /api/reports
func (h *ReportHandler) ListMine(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 100 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", fmt.Errorf("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}
	reports, err := h.reports.ListMine(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reports": reports})
}
