package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/normalization"
	"github.com/notemind/notemind-backend/internal/repos"
	"github.com/notemind/notemind-backend/internal/requestdata"
	"github.com/notemind/notemind-backend/internal/types"
	"github.com/notemind/notemind-backend/internal/utils"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, *types.User, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, error)
	LogoutUser(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	mailService   MailService
	cfg           config.AuthConfig
	frontendURL   string
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	mailService MailService,
	cfg config.AuthConfig,
	frontendURL string,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		mailService:   mailService,
		cfg:           cfg,
		frontendURL:   frontendURL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(user)
	if vErr := utils.ValidateRegistration(ctx, as.userRepo, user); vErr != nil {
		return apierr.Validation(vErr)
	}
	hashed, hErr := utils.HashPassword(user.Password)
	if hErr != nil {
		return apierr.Persistence(hErr)
	}
	user.ID = uuid.New()
	user.Password = hashed
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to create user: %w", err))
	}
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, *types.User, error) {
	email = normalization.ParseInputString(email)
	if email == "" || password == "" {
		return "", "", nil, apierr.Validation(fmt.Errorf("Email and password are required to login"))
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", nil, apierr.Persistence(fmt.Errorf("Error retrieving user by email: %w", err))
	}
	if user == nil {
		return "", "", nil, apierr.Unauthorized(fmt.Errorf("Invalid credentials"))
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", "", nil, apierr.Unauthorized(fmt.Errorf("Invalid credentials"))
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Token rotation: a fresh login invalidates prior refresh tokens.
		if dErr := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); dErr != nil {
			return fmt.Errorf("Failed to clear prior user tokens: %w", dErr)
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("Generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.cfg.RefreshTokenTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); cErr != nil {
			return fmt.Errorf("Create user token error: %w", cErr)
		}
		return nil
	}); err != nil {
		return "", "", nil, apierr.Persistence(err)
	}
	return accessToken, refreshToken, user, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apierr.Unauthorized(fmt.Errorf("No refresh token"))
	}
	token, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return "", apierr.Persistence(fmt.Errorf("Failed to look up refresh token: %w", err))
	}
	if token == nil || token.ExpiresAt.Before(time.Now()) {
		return "", apierr.Unauthorized(fmt.Errorf("Invalid refresh token"))
	}
	user, err := as.userRepo.GetByID(ctx, nil, token.UserID)
	if err != nil {
		return "", apierr.Persistence(fmt.Errorf("Failed to load user: %w", err))
	}
	if user == nil {
		return "", apierr.Unauthorized(fmt.Errorf("User not found"))
	}
	return as.generateAccessToken(user)
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.Unauthorized(fmt.Errorf("No request data found in context"))
	}
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID); err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to delete user tokens: %w", err))
	}
	return nil
}

func (as *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalization.ParseInputString(email)
	if email == "" {
		return apierr.Validation(fmt.Errorf("Email is required"))
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to look up user: %w", err))
	}
	if user == nil {
		return apierr.NotFound(fmt.Errorf("User not found"))
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to generate reset token: %w", err))
	}
	resetToken := hex.EncodeToString(buf)
	expires := time.Now().Add(as.cfg.ResetTokenTTL)
	if err := as.userRepo.UpdateFields(ctx, nil, user.ID, map[string]interface{}{
		"reset_password_token":   resetToken,
		"reset_password_expires": expires,
	}); err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to store reset token: %w", err))
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", as.frontendURL, resetToken)
	body := passwordResetEmailHTML(resetURL)
	if err := as.mailService.Send(ctx, user.Email, "Password Reset Request - NoteMind", body); err != nil {
		return apierr.Upstream(fmt.Errorf("Failed to send reset email: %w", err))
	}
	return nil
}

func (as *authService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return apierr.Validation(fmt.Errorf("Token and password are required"))
	}
	user, err := as.userRepo.GetByResetToken(ctx, nil, token, time.Now())
	if err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to look up reset token: %w", err))
	}
	if user == nil {
		return apierr.Validation(fmt.Errorf("Invalid or expired token"))
	}
	hashed, hErr := utils.HashPassword(password)
	if hErr != nil {
		return apierr.Persistence(hErr)
	}
	if err := as.userRepo.UpdateFields(ctx, nil, user.ID, map[string]interface{}{
		"password":               hashed,
		"reset_password_token":   "",
		"reset_password_expires": nil,
	}); err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to update password: %w", err))
	}
	return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, apierr.Unauthorized(fmt.Errorf("Invalid or expired token"))
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("Invalid token subject"))
	}
	email, _ := claims["email"].(string)
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       email,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.cfg.AccessTokenTTL
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(as.cfg.AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign access token: %w", err)
	}
	return signed, nil
}

func passwordResetEmailHTML(resetURL string) string {
	return fmt.Sprintf(`<div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e0e0e0; border-radius: 10px; overflow: hidden;">
  <div style="background-color: #4f46e5; padding: 20px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0; font-size: 24px;">NoteMind</h1>
  </div>
  <div style="padding: 30px; color: #333333; line-height: 1.6;">
    <h2 style="color: #1f2937; margin-top: 0;">Password Reset Request</h2>
    <p>ඔබගේ මුරපදය (Password) අමතක වී ඇති බව අපට දැනගන්නට ලැබුණි. පහත බොත්තම ක්ලික් කිරීමෙන් ඔබට නව මුරපදයක් සැකසිය හැක.</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s" style="background-color: #4f46e5; color: #ffffff; padding: 12px 25px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block;">Reset My Password</a>
    </div>
    <p style="font-size: 14px; color: #666666;">ඉහත බොත්තම වැඩ නොකරන්නේ නම්, පහත සබැඳිය (link) කොපි කර ඔබේ බ්‍රව්සරයට ඇතුළත් කරන්න:</p>
    <p style="font-size: 12px; word-break: break-all; color: #4f46e5;">%s</p>
  </div>
  <div style="background-color: #f9fafb; padding: 15px; text-align: center; font-size: 12px; color: #9ca3af;">&copy; %d NoteMind. All rights reserved.</div>
</div>`, resetURL, resetURL, time.Now().Year())
}
