package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testinsight-backend/internal/service"
	"testinsight-backend/utilities"
)

// RegisterRoutes registers all route groups and their endpoints. limiter may
// be nil.
func RegisterRoutes(r *gin.Engine,
	attemptService service.AttemptService,
	analysisService service.AnalysisService,
	limiter gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := []gin.HandlerFunc{utilities.AuthMiddleware()}
	if limiter != nil {
		protected = append(protected, limiter)
	}

	attemptCtrl := NewAttemptController(attemptService)
	attemptRoutes := r.Group("/attempts", protected...)
	{
		attemptRoutes.POST("", attemptCtrl.SubmitAttempt)
	}

	analysisCtrl := NewAnalysisController(analysisService)
	analysisRoutes := r.Group("/analysis", protected...)
	{
		analysisRoutes.GET("/attempts/:attempt_id", analysisCtrl.GetAnalysis)
		analysisRoutes.GET("/attempts/:attempt_id/report.pdf", analysisCtrl.DownloadReport)
		analysisRoutes.GET("/reports", analysisCtrl.ListReports)
	}
}
