package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testinsight-backend/internal/service"
	"testinsight-backend/utilities"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// SubmitAttempt handles POST /attempts
func (ac *AttemptController) SubmitAttempt(c *gin.Context) {
	uid, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req service.AttemptSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	attempt, err := ac.attemptService.Submit(c.Request.Context(), uid, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"attempt_id":      attempt.ID,
		"total_questions": attempt.TotalQuestions,
		"correct_answers": attempt.CorrectAnswers,
		"submitted_at":    attempt.SubmittedAt,
	})
}
