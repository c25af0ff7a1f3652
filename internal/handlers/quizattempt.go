package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/services"
)

type QuizAttemptHandler struct {
	log            *logger.Logger
	attemptService services.QuizAttemptService
}

func NewQuizAttemptHandler(log *logger.Logger, attemptService services.QuizAttemptService) *QuizAttemptHandler {
	return &QuizAttemptHandler{
		log:            log.With("handler", "QuizAttemptHandler"),
		attemptService: attemptService,
	}
}

func (qh *QuizAttemptHandler) Submit(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, qh.log, err, "Failed to submit quiz attempt")
		return
	}
	quizID, err := uuid.Parse(c.Param("quizId"))
	if err != nil {
		RespondError(c, qh.log, apierr.Validation(fmt.Errorf("invalid quiz id")), "Failed to submit quiz attempt")
		return
	}
	var req struct {
		Answers []string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, qh.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to submit quiz attempt")
		return
	}
	attempt, err := qh.attemptService.SubmitAttempt(c.Request.Context(), userID, quizID, req.Answers)
	if err != nil {
		RespondError(c, qh.log, err, "Failed to submit quiz attempt")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attempt": attempt})
}

func (qh *QuizAttemptHandler) List(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, qh.log, err, "Failed to list quiz attempts")
		return
	}
	quizID, err := uuid.Parse(c.Param("quizId"))
	if err != nil {
		RespondError(c, qh.log, apierr.Validation(fmt.Errorf("invalid quiz id")), "Failed to list quiz attempts")
		return
	}
	attempts, err := qh.attemptService.ListAttempts(c.Request.Context(), userID, quizID)
	if err != nil {
		RespondError(c, qh.log, err, "Failed to list quiz attempts")
		return
	}
	RespondOK(c, gin.H{"attempts": attempts})
}
