package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/repos"
	"github.com/notemind/notemind-backend/internal/types"
)

const recentNoteLimit = 5

// DashboardStats is the aggregate view the home screen renders.
type DashboardStats struct {
	NoteCount      int64         `json:"noteCount"`
	SubjectCount   int64         `json:"subjectCount"`
	SummaryCount   int64         `json:"summaryCount"`
	QuizCount      int64         `json:"quizCount"`
	FlashcardCount int64         `json:"flashcardCount"`
	RecentNotes    []*types.Note `json:"recentNotes"`
}

type DashboardService interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error)
}

type dashboardService struct {
	db            *gorm.DB
	log           *logger.Logger
	noteRepo      repos.NoteRepo
	subjectRepo   repos.SubjectRepo
	summaryRepo   repos.SummaryRepo
	quizRepo      repos.QuizRepo
	flashcardRepo repos.FlashcardRepo
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	noteRepo repos.NoteRepo,
	subjectRepo repos.SubjectRepo,
	summaryRepo repos.SummaryRepo,
	quizRepo repos.QuizRepo,
	flashcardRepo repos.FlashcardRepo,
) DashboardService {
	return &dashboardService{
		db:            db,
		log:           log.With("service", "DashboardService"),
		noteRepo:      noteRepo,
		subjectRepo:   subjectRepo,
		summaryRepo:   summaryRepo,
		quizRepo:      quizRepo,
		flashcardRepo: flashcardRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.NoteCount, err = s.noteRepo.CountByUser(ctx, nil, userID, false); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to count notes: %w", err))
	}
	if stats.SubjectCount, err = s.subjectRepo.CountByUser(ctx, nil, userID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to count subjects: %w", err))
	}
	if stats.SummaryCount, err = s.summaryRepo.CountByUser(ctx, nil, userID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to count summaries: %w", err))
	}
	if stats.QuizCount, err = s.quizRepo.CountByUser(ctx, nil, userID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to count quizzes: %w", err))
	}
	if stats.FlashcardCount, err = s.flashcardRepo.CountByUser(ctx, nil, userID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to count flashcards: %w", err))
	}
	if stats.RecentNotes, err = s.noteRepo.ListRecent(ctx, nil, userID, recentNoteLimit); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list recent notes: %w", err))
	}
	return stats, nil
}
