package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/requestdata"
	"github.com/notemind/notemind-backend/internal/services"
	"github.com/notemind/notemind-backend/internal/types"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
		userService: userService,
	}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ah.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to register")
		return
	}
	user := types.User{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}
	if err := ah.authService.RegisterUser(c.Request.Context(), &user); err != nil {
		RespondError(c, ah.log, err, "Failed to register")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ah.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to login")
		return
	}
	accessToken, refreshToken, user, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to login")
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    expiresIn,
		"user":          user,
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ah.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to refresh")
		return
	}
	accessToken, err := ah.authService.RefreshUser(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to refresh")
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
		RespondError(c, ah.log, err, "Failed to logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ah *AuthHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, ah.log, apierr.Unauthorized(fmt.Errorf("unauthorized")), "Failed to load profile")
		return
	}
	user, err := ah.userService.GetProfile(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, ah.log, err, "Failed to load profile")
		return
	}
	RespondOK(c, gin.H{"user": user})
}

func (ah *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ah.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to process request")
		return
	}
	if err := ah.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		RespondError(c, ah.log, err, "Failed to send password reset email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

func (ah *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ah.log, apierr.Validation(fmt.Errorf("invalid request body")), "Failed to reset password")
		return
	}
	if err := ah.authService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		RespondError(c, ah.log, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
