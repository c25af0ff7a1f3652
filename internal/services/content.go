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

// ContentBundle is everything generated for one note. Absent pieces are nil
// or empty rather than an error.
type ContentBundle struct {
	Summary     *types.Summary     `json:"summary"`
	Explanation *types.Explanation `json:"explanation"`
	Quiz        *types.Quiz        `json:"quiz"`
	Flashcards  []*types.Flashcard `json:"flashcards"`
}

// ContentService reads back previously generated study aids. Reads are
// note-scoped and go through the note's ownership check first, so a foreign
// note ID reads as absent.
type ContentService interface {
	GetLatestSummary(ctx context.Context, userID, noteID uuid.UUID) (*types.Summary, error)
	GetLatestExplanation(ctx context.Context, userID, noteID uuid.UUID) (*types.Explanation, error)
	GetLatestQuiz(ctx context.Context, userID, noteID uuid.UUID) (*types.Quiz, error)
	ListFlashcards(ctx context.Context, userID, noteID uuid.UUID) ([]*types.Flashcard, error)
	GetBundle(ctx context.Context, userID, noteID uuid.UUID) (*ContentBundle, error)
}

type contentService struct {
	db              *gorm.DB
	log             *logger.Logger
	noteRepo        repos.NoteRepo
	summaryRepo     repos.SummaryRepo
	explanationRepo repos.ExplanationRepo
	quizRepo        repos.QuizRepo
	flashcardRepo   repos.FlashcardRepo
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	noteRepo repos.NoteRepo,
	summaryRepo repos.SummaryRepo,
	explanationRepo repos.ExplanationRepo,
	quizRepo repos.QuizRepo,
	flashcardRepo repos.FlashcardRepo,
) ContentService {
	return &contentService{
		db:              db,
		log:             log.With("service", "ContentService"),
		noteRepo:        noteRepo,
		summaryRepo:     summaryRepo,
		explanationRepo: explanationRepo,
		quizRepo:        quizRepo,
		flashcardRepo:   flashcardRepo,
	}
}

func (s *contentService) ownedNote(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, nil, noteID, userID)
	if err != nil {
		return apierr.Persistence(fmt.Errorf("Failed to load note: %w", err))
	}
	if note == nil {
		return apierr.NotFound(fmt.Errorf("note not found"))
	}
	return nil
}

func (s *contentService) GetLatestSummary(ctx context.Context, userID, noteID uuid.UUID) (*types.Summary, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	summary, err := s.summaryRepo.GetLatestByNoteID(ctx, nil, noteID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load summary: %w", err))
	}
	if summary == nil {
		return nil, apierr.NotFound(fmt.Errorf("summary not found"))
	}
	return summary, nil
}

func (s *contentService) GetLatestExplanation(ctx context.Context, userID, noteID uuid.UUID) (*types.Explanation, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	explanation, err := s.explanationRepo.GetLatestByNoteID(ctx, nil, noteID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load explanation: %w", err))
	}
	if explanation == nil {
		return nil, apierr.NotFound(fmt.Errorf("explanation not found"))
	}
	return explanation, nil
}

func (s *contentService) GetLatestQuiz(ctx context.Context, userID, noteID uuid.UUID) (*types.Quiz, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.GetLatestByNoteID(ctx, nil, noteID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load quiz: %w", err))
	}
	if quiz == nil {
		return nil, apierr.NotFound(fmt.Errorf("quiz not found"))
	}
	return quiz, nil
}

func (s *contentService) ListFlashcards(ctx context.Context, userID, noteID uuid.UUID) ([]*types.Flashcard, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	cards, err := s.flashcardRepo.ListByNoteID(ctx, nil, noteID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list flashcards: %w", err))
	}
	return cards, nil
}

func (s *contentService) GetBundle(ctx context.Context, userID, noteID uuid.UUID) (*ContentBundle, error) {
	if err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	bundle := &ContentBundle{Flashcards: []*types.Flashcard{}}
	var err error
	if bundle.Summary, err = s.summaryRepo.GetLatestByNoteID(ctx, nil, noteID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load summary: %w", err))
	}
	if bundle.Explanation, err = s.explanationRepo.GetLatestByNoteID(ctx, nil, noteID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load explanation: %w", err))
	}
	if bundle.Quiz, err = s.quizRepo.GetLatestByNoteID(ctx, nil, noteID); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load quiz: %w", err))
	}
	cards, err := s.flashcardRepo.ListByNoteID(ctx, nil, noteID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list flashcards: %w", err))
	}
	if cards != nil {
		bundle.Flashcards = cards
	}
	return bundle, nil
}
