package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/repos"
	"github.com/notemind/notemind-backend/internal/types"
)

type QuizAttemptService interface {
	SubmitAttempt(ctx context.Context, userID, quizID uuid.UUID, answers []string) (*types.QuizAttempt, error)
	ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]*types.QuizAttempt, error)
}

type quizAttemptService struct {
	db          *gorm.DB
	log         *logger.Logger
	quizRepo    repos.QuizRepo
	attemptRepo repos.QuizAttemptRepo
}

func NewQuizAttemptService(db *gorm.DB, log *logger.Logger, quizRepo repos.QuizRepo, attemptRepo repos.QuizAttemptRepo) QuizAttemptService {
	return &quizAttemptService{
		db:          db,
		log:         log.With("service", "QuizAttemptService"),
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
	}
}

// SubmitAttempt grades answers index-wise against the stored questions. An
// answer is correct only when it equals the stored correctAnswer exactly.
func (s *quizAttemptService) SubmitAttempt(ctx context.Context, userID, quizID uuid.UUID, answers []string) (*types.QuizAttempt, error) {
	quiz, err := s.quizRepo.GetByID(ctx, nil, quizID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load quiz: %w", err))
	}
	if quiz == nil {
		return nil, apierr.NotFound(fmt.Errorf("quiz not found"))
	}

	questions := quiz.Questions.Data()
	if len(answers) != len(questions) {
		return nil, apierr.Validation(fmt.Errorf("Expected %d answers, got %d", len(questions), len(answers)))
	}

	score := 0
	for i, q := range questions {
		if answers[i] == q.CorrectAnswer {
			score++
		}
	}

	attempt := &types.QuizAttempt{
		ID:      uuid.New(),
		UserID:  userID,
		QuizID:  quiz.ID,
		Answers: datatypes.NewJSONSlice(answers),
		Score:   score,
		Total:   len(questions),
	}
	if _, err := s.attemptRepo.Create(ctx, nil, []*types.QuizAttempt{attempt}); err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to save quiz attempt: %w", err))
	}
	return attempt, nil
}

func (s *quizAttemptService) ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]*types.QuizAttempt, error) {
	quiz, err := s.quizRepo.GetByID(ctx, nil, quizID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to load quiz: %w", err))
	}
	if quiz == nil {
		return nil, apierr.NotFound(fmt.Errorf("quiz not found"))
	}
	attempts, err := s.attemptRepo.ListByQuizID(ctx, nil, quizID, userID)
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("Failed to list quiz attempts: %w", err))
	}
	return attempts, nil
}
