package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/requestdata"
)

func newTestAuthService(t *testing.T, cfg config.AuthConfig) AuthService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewAuthService(nil, log, nil, nil, nil, cfg, "http://localhost:5173")
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSetContextFromToken_ValidTokenSetsRequestData(t *testing.T) {
	cfg := config.AuthConfig{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour}
	svc := newTestAuthService(t, cfg)

	userID := uuid.New()
	token := signTestToken(t, cfg.JWTSecretKey, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "user@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("expected request data in context")
	}
	if rd.UserID != userID || rd.Email != "user@example.com" {
		t.Fatalf("unexpected request data: %+v", rd)
	}
}

func TestSetContextFromToken_WrongSecretIsUnauthorized(t *testing.T) {
	cfg := config.AuthConfig{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour}
	svc := newTestAuthService(t, cfg)

	token := signTestToken(t, "other-secret", jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.SetContextFromToken(context.Background(), token); !apierr.Is(err, apierr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSetContextFromToken_ExpiredTokenIsUnauthorized(t *testing.T) {
	cfg := config.AuthConfig{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour}
	svc := newTestAuthService(t, cfg)

	token := signTestToken(t, cfg.JWTSecretKey, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	if _, err := svc.SetContextFromToken(context.Background(), token); !apierr.Is(err, apierr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSetContextFromToken_GarbageSubjectIsUnauthorized(t *testing.T) {
	cfg := config.AuthConfig{JWTSecretKey: "test-secret", AccessTokenTTL: time.Hour}
	svc := newTestAuthService(t, cfg)

	token := signTestToken(t, cfg.JWTSecretKey, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.SetContextFromToken(context.Background(), token); !apierr.Is(err, apierr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
