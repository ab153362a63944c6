package handler

import (
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportSvc ports.ReportService
}

func NewReportHandler(reportSvc ports.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Summary handles GET /api/v1/reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	overview, err := h.reportSvc.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, overview)
}
