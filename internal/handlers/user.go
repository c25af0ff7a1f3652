package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/requestdata"
	"github.com/notemind/notemind-backend/internal/services"
)

// requestUserID pulls the authenticated user id off the request context.
func requestUserID(c *gin.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized(fmt.Errorf("unauthorized"))
	}
	return rd.UserID, nil
}

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to load profile")
		return
	}
	user, err := uh.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to load profile")
		return
	}
	RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to update profile")
		return
	}
	var req struct {
		Username string `json:"username"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, uh.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to update profile")
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileInput{
		Username: req.Username,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		RespondError(c, uh.log, err, "Failed to update profile")
		return
	}
	RespondOK(c, gin.H{"user": user})
}
