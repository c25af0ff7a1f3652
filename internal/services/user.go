package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/normalization"
	"github.com/notemind/notemind-backend/internal/repos"
	"github.com/notemind/notemind-backend/internal/types"
)

// ProfileInput carries the self-editable profile fields. Email and password
// changes go through the auth flows instead.
type ProfileInput struct {
	Username string
	ImageURL string
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load user: %w", err))
	}
	if user == nil {
		return nil, apierr.NotFound(fmt.Errorf("user not found"))
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*types.User, error) {
	fields := map[string]interface{}{}
	if username := normalization.ParseInputString(in.Username); username != "" {
		fields["username"] = username
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
			return nil, apierr.Persistence(fmt.Errorf("Failed to update user: %w", err))
		}
	}
	return s.GetProfile(ctx, userID)
}
