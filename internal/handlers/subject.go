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

type SubjectHandler struct {
	log            *logger.Logger
	subjectService services.SubjectService
}

func NewSubjectHandler(log *logger.Logger, subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		log:            log.With("handler", "SubjectHandler"),
		subjectService: subjectService,
	}
}

func (sh *SubjectHandler) Create(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to create subject")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, sh.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to create subject")
		return
	}
	subject, err := sh.subjectService.CreateSubject(c.Request.Context(), userID, req.Name)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to create subject")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subject": subject})
}

func (sh *SubjectHandler) List(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to list subjects")
		return
	}
	subjects, err := sh.subjectService.ListSubjects(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to list subjects")
		return
	}
	RespondOK(c, gin.H{"subjects": subjects})
}

func (sh *SubjectHandler) Get(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to load subject")
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, sh.log, apierr.Validation(fmt.Errorf("invalid subject id")), "Failed to load subject")
		return
	}
	subject, err := sh.subjectService.GetSubject(c.Request.Context(), userID, subjectID)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to load subject")
		return
	}
	RespondOK(c, gin.H{"subject": subject})
}

func (sh *SubjectHandler) Update(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to update subject")
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, sh.log, apierr.Validation(fmt.Errorf("invalid subject id")), "Failed to update subject")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, sh.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to update subject")
		return
	}
	subject, err := sh.subjectService.RenameSubject(c.Request.Context(), userID, subjectID, req.Name)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to update subject")
		return
	}
	RespondOK(c, gin.H{"subject": subject})
}

func (sh *SubjectHandler) Delete(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, sh.log, err, "Failed to delete subject")
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, sh.log, apierr.Validation(fmt.Errorf("invalid subject id")), "Failed to delete subject")
		return
	}
	if err := sh.subjectService.DeleteSubject(c.Request.Context(), userID, subjectID); err != nil {
		RespondError(c, sh.log, err, "Failed to delete subject")
		return
	}
	RespondOK(c, gin.H{"message": "Subject deleted"})
}
