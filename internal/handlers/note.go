package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/services"
)

type NoteHandler struct {
	log         *logger.Logger
	noteService services.NoteService
	pdfService  services.PDFService
}

func NewNoteHandler(log *logger.Logger, noteService services.NoteService, pdfService services.PDFService) *NoteHandler {
	return &NoteHandler{
		log:         log.With("handler", "NoteHandler"),
		noteService: noteService,
		pdfService:  pdfService,
	}
}

type noteRequest struct {
	Title     string    `json:"title"`
	HTML      string    `json:"html"`
	JSON      string    `json:"json"`
	SubjectID uuid.UUID `json:"subjectId"`
	Images    []string  `json:"images"`
	PDFURL    string    `json:"pdfUrl"`
}

func (nh *NoteHandler) Create(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to create note")
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to create note")
		return
	}
	note, err := nh.noteService.CreateNote(c.Request.Context(), userID, services.NoteInput{
		Title:     req.Title,
		HTML:      req.HTML,
		JSON:      req.JSON,
		SubjectID: req.SubjectID,
		Images:    req.Images,
		PDFURL:    req.PDFURL,
	})
	if err != nil {
		RespondError(c, nh.log, err, "Failed to create note")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": note})
}

func (nh *NoteHandler) List(c *gin.Context) {
	nh.list(c, false)
}

func (nh *NoteHandler) ListTrashed(c *gin.Context) {
	nh.list(c, true)
}

func (nh *NoteHandler) list(c *gin.Context, trashed bool) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to list notes")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	result, err := nh.noteService.ListNotes(c.Request.Context(), userID, trashed, page, limit)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to list notes")
		return
	}
	RespondOK(c, gin.H{
		"notes": result.Notes,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	})
}

func (nh *NoteHandler) Get(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to load note")
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid note id")), "Failed to load note")
		return
	}
	note, err := nh.noteService.GetNote(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to load note")
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Update(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to update note")
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid note id")), "Failed to update note")
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to update note")
		return
	}
	note, err := nh.noteService.UpdateNote(c.Request.Context(), userID, noteID, services.NoteInput{
		Title:     req.Title,
		HTML:      req.HTML,
		JSON:      req.JSON,
		SubjectID: req.SubjectID,
		Images:    req.Images,
		PDFURL:    req.PDFURL,
	})
	if err != nil {
		RespondError(c, nh.log, err, "Failed to update note")
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Trash(c *gin.Context) {
	nh.setTrashed(c, true, "Failed to trash note")
}

func (nh *NoteHandler) Restore(c *gin.Context) {
	nh.setTrashed(c, false, "Failed to restore note")
}

func (nh *NoteHandler) setTrashed(c *gin.Context, trashed bool, fallback string) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, fallback)
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid note id")), fallback)
		return
	}
	var note any
	if trashed {
		note, err = nh.noteService.TrashNote(c.Request.Context(), userID, noteID)
	} else {
		note, err = nh.noteService.RestoreNote(c.Request.Context(), userID, noteID)
	}
	if err != nil {
		RespondError(c, nh.log, err, fallback)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Purge(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to delete note")
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid note id")), "Failed to delete note")
		return
	}
	if err := nh.noteService.PurgeNote(c.Request.Context(), userID, noteID); err != nil {
		RespondError(c, nh.log, err, "Failed to delete note")
		return
	}
	RespondOK(c, gin.H{"message": "Note deleted permanently"})
}

func (nh *NoteHandler) Search(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to search notes")
		return
	}
	notes, err := nh.noteService.SearchNotes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		RespondError(c, nh.log, err, "Failed to search notes")
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}

func (nh *NoteHandler) BySubject(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to list notes")
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid subject id")), "Failed to list notes")
		return
	}
	notes, err := nh.noteService.ListNotesBySubject(c.Request.Context(), userID, subjectID)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to list notes")
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}

func (nh *NoteHandler) GeneratePDF(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to generate PDF")
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, nh.log, apierr.Validation(fmt.Errorf("invalid note id")), "Failed to generate PDF")
		return
	}
	url, err := nh.pdfService.GenerateNotePDF(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, nh.log, err, "Failed to generate PDF")
		return
	}
	RespondOK(c, gin.H{"pdf_url": url})
}
