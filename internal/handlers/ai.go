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

type AIHandler struct {
	log       *logger.Logger
	aiService services.AIService
}

func NewAIHandler(log *logger.Logger, aiService services.AIService) *AIHandler {
	return &AIHandler{
		log:       log.With("handler", "AIHandler"),
		aiService: aiService,
	}
}

func (ah *AIHandler) noteID(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := requestUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apierr.Validation(fmt.Errorf("invalid note id"))
	}
	return userID, noteID, nil
}

func (ah *AIHandler) Summarize(c *gin.Context) {
	userID, noteID, err := ah.noteID(c)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate summary")
		return
	}
	summary, err := ah.aiService.Summarize(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate summary")
		return
	}
	RespondOK(c, gin.H{"summary": summary})
}

func (ah *AIHandler) Explain(c *gin.Context) {
	userID, noteID, err := ah.noteID(c)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate explanation")
		return
	}
	explanation, err := ah.aiService.Explain(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate explanation")
		return
	}
	RespondOK(c, gin.H{"explanation": explanation})
}

func (ah *AIHandler) GenerateQuiz(c *gin.Context) {
	userID, noteID, err := ah.noteID(c)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate quiz")
		return
	}
	quiz, err := ah.aiService.GenerateQuiz(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate quiz")
		return
	}
	RespondOK(c, gin.H{"questions": quiz.Questions.Data(), "quizId": quiz.ID})
}

func (ah *AIHandler) GenerateFlashcards(c *gin.Context) {
	userID, noteID, err := ah.noteID(c)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate flashcards")
		return
	}
	cards, err := ah.aiService.GenerateFlashcards(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate flashcards")
		return
	}
	RespondOK(c, gin.H{"flashcards": cards})
}

func (ah *AIHandler) AutoGenerateNote(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate note")
		return
	}
	var req struct {
		Title       string    `json:"title"`
		WordCount   int       `json:"wordCount"`
		SubjectID   uuid.UUID `json:"subjectId"`
		SubjectName string    `json:"subjectName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ah.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to generate note")
		return
	}
	note, err := ah.aiService.AutoGenerateNote(c.Request.Context(), userID, services.AutoNoteInput{
		Title:       req.Title,
		WordCount:   req.WordCount,
		SubjectID:   req.SubjectID,
		SubjectName: req.SubjectName,
	})
	if err != nil {
		RespondError(c, ah.log, err, "Failed to generate note")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Note generated successfully", "note": note})
}
