package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/services"
)

type ContentHandler struct {
	log            *logger.Logger
	contentService services.ContentService
}

func NewContentHandler(log *logger.Logger, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:            log.With("handler", "ContentHandler"),
		contentService: contentService,
	}
}

// GetBundle returns everything generated for a note in one shot.
func (ch *ContentHandler) GetBundle(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, ch.log, err, "Failed to load generated content")
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		RespondError(c, ch.log, apierr.Validation(fmt.Errorf("invalid note id")), "Failed to load generated content")
		return
	}
	bundle, err := ch.contentService.GetBundle(c.Request.Context(), userID, noteID)
	if err != nil {
		RespondError(c, ch.log, err, "Failed to load generated content")
		return
	}
	RespondOK(c, bundle)
}
