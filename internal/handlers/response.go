package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
)

// RespondError maps a service error onto the wire shape {"message": "..."}.
// Client errors (4xx) surface the service's own message; server-side failures
// surface only the caller-supplied fallback, with the real error logged.
func RespondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	status := apierr.Status(err)
	msg := fallback
	if status < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	} else if log != nil {
		log.Error(fallback, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"message": msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
