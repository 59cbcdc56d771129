package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/service"
	"testinsight-backend/utilities"
)

type AnalysisController struct {
	analysisService service.AnalysisService
}

func NewAnalysisController(analysisService service.AnalysisService) *AnalysisController {
	return &AnalysisController{analysisService: analysisService}
}

// GetAnalysis handles GET /analysis/attempts/:attempt_id
func (ac *AnalysisController) GetAnalysis(c *gin.Context) {
	report, ok := ac.ownedReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// DownloadReport handles GET /analysis/attempts/:attempt_id/report.pdf
func (ac *AnalysisController) DownloadReport(c *gin.Context) {
	report, ok := ac.ownedReport(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := service.RenderReportPDF(report, &buf); err != nil {
		utilities.Error("PDF export failed for report %s: %v", report.ReportID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}
	filename := fmt.Sprintf("analysis_%d.pdf", report.AttemptID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ListReports handles GET /analysis/reports
func (ac *AnalysisController) ListReports(c *gin.Context) {
	uid, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	reports, err := ac.analysisService.ListReports(c.Request.Context(), uid)
	if err != nil {
		utilities.Error("Failed to list reports for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	if reports == nil {
		reports = []model.AnalysisReport{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ownedReport checks that the caller owns the attempt and returns its report.
// It writes the error response itself when it returns false.
func (ac *AnalysisController) ownedReport(c *gin.Context) (*model.AnalysisReport, bool) {
	uid, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	attemptID, err := strconv.ParseUint(c.Param("attempt_id"), 10, 64)
	if err != nil || attemptID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attempt ID"})
		return nil, false
	}

	ctx := c.Request.Context()
	if err := ac.analysisService.AuthorizeAttempt(ctx, uint(attemptID), uid); err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	report, err := ac.analysisService.GetOrCreate(ctx, uint(attemptID))
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	return report, true
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, service.ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utilities.Error("request %s failed: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
