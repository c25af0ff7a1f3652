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

type SubjectService interface {
	CreateSubject(ctx context.Context, userID uuid.UUID, name string) (*types.Subject, error)
	GetSubject(ctx context.Context, userID, subjectID uuid.UUID) (*types.Subject, error)
	ListSubjects(ctx context.Context, userID uuid.UUID) ([]*types.Subject, error)
	RenameSubject(ctx context.Context, userID, subjectID uuid.UUID, name string) (*types.Subject, error)
	DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error
}

type subjectService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	noteRepo    repos.NoteRepo
}

func NewSubjectService(db *gorm.DB, log *logger.Logger, subjectRepo repos.SubjectRepo, noteRepo repos.NoteRepo) SubjectService {
	return &subjectService{
		db:          db,
		log:         log.With("service", "SubjectService"),
		subjectRepo: subjectRepo,
		noteRepo:    noteRepo,
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, userID uuid.UUID, name string) (*types.Subject, error) {
	name = normalization.ParseInputString(name)
	if name == "" {
		return nil, apierr.Validation(fmt.Errorf("A name is required to create a subject"))
	}
	subject := &types.Subject{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	if _, err := s.subjectRepo.Create(ctx, nil, []*types.Subject{subject}); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to create subject: %w", err))
	}
	return subject, nil
}

func (s *subjectService) GetSubject(ctx context.Context, userID, subjectID uuid.UUID) (*types.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, nil, subjectID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load subject: %w", err))
	}
	if subject == nil {
		return nil, apierr.NotFound(fmt.Errorf("subject not found"))
	}
	return subject, nil
}

func (s *subjectService) ListSubjects(ctx context.Context, userID uuid.UUID) ([]*types.Subject, error) {
	subjects, err := s.subjectRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list subjects: %w", err))
	}
	return subjects, nil
}

func (s *subjectService) RenameSubject(ctx context.Context, userID, subjectID uuid.UUID, name string) (*types.Subject, error) {
	name = normalization.ParseInputString(name)
	if name == "" {
		return nil, apierr.Validation(fmt.Errorf("A name is required to rename a subject"))
	}
	subject, err := s.subjectRepo.UpdateName(ctx, nil, subjectID, userID, name)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to rename subject: %w", err))
	}
	if subject == nil {
		return nil, apierr.NotFound(fmt.Errorf("subject not found"))
	}
	return subject, nil
}

func (s *subjectService) DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	// Notes under the subject are trashed, not deleted, so they survive in
	// the trash list and can be restored.
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		notes, lErr := s.noteRepo.ListBySubject(ctx, tx, subjectID, userID)
		if lErr != nil {
			return fmt.Errorf("Failed to list subject notes: %w", lErr)
		}
		for _, note := range notes {
			if _, tErr := s.noteRepo.SetTrashed(ctx, tx, note.ID, userID, true); tErr != nil {
				return fmt.Errorf("Failed to trash subject note: %w", tErr)
			}
		}
		subject, dErr := s.subjectRepo.Delete(ctx, tx, subjectID, userID)
		if dErr != nil {
			return fmt.Errorf("Failed to delete subject: %w", dErr)
		}
		if subject == nil {
			return apierr.NotFound(fmt.Errorf("subject not found"))
		}
		return nil
	}); err != nil {
		if apierr.Is(err, apierr.CodeNotFound) {
			return err
		}
		return apierr.Persistence(err)
	}
	return nil
}
